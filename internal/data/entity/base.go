package entity

import "time"

type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) SetID(id string) { b.ID = id }

type BaseSimple struct {
	ID string `json:"id"`
}

func (b *BaseSimple) SetID(id string) { b.ID = id }
