package cmd

import (
	"errors"

	"food-ordering/internal/dto/request"

	"github.com/spf13/cobra"
)

var (
	loginPhone    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and remember the session token",
	Example: `  food-ordering login --phone 123456789 --password password123`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		resp, err := a.Service.Auth.Login(cmd.Context(), &request.LoginRequest{
			Phone:    loginPhone,
			Password: loginPassword,
		})
		if err != nil {
			return err
		}
		if resp == nil {
			return errors.New("invalid phone number or password")
		}
		if err := a.Service.Session.SetToken(cmd.Context(), resp.Token); err != nil {
			return err
		}

		cmd.Printf("Signed in as %s %s (%s)\n", resp.User.FirstName, resp.User.LastName, resp.User.ID)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Service.Auth.Logout(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the user behind the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context(), cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		found, err := a.Service.Session.Restore(cmd.Context())
		if err != nil {
			return err
		}
		if !found {
			cmd.Println("Not signed in")
			return nil
		}

		user := a.Service.Auth.VerifyToken(cmd.Context(), a.Service.Session.Token())
		if user == nil {
			cmd.Println("Session expired, run login again")
			return nil
		}
		cmd.Printf("%s %s (%s) phone %s\n", user.FirstName, user.LastName, user.ID, user.Phone)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginPhone, "phone", "", "account phone number")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("phone")
	_ = loginCmd.MarkFlagRequired("password")
}
