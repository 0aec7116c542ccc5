package main

import (
	"fmt"

	"github.com/bbqgrill/backend/internal/model"
	"github.com/bbqgrill/backend/internal/service"
	"github.com/spf13/cobra"
)

func newContactCmd(a *app) *cobra.Command {
	var name, email, message string
	var perField bool
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a contact form message to the restaurant inbox",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.newEmailService(a.cfg)
			var result service.EmailResult
			if perField {
				result = svc.SendContactForm(cmd.Context(), name, email, message)
			} else {
				result = svc.SendContactEmail(cmd.Context(), model.NewContactMessage(name, email, message))
			}

			switch res := result.(type) {
			case service.EmailSent:
				cmd.Println(res.Message)
				return nil
			case service.EmailFailed:
				return fmt.Errorf("%s", res.Message)
			default:
				return fmt.Errorf("unexpected email result %T", result)
			}
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "sender name")
	cmd.Flags().StringVar(&email, "email", "", "sender email, used as Reply-To")
	cmd.Flags().StringVar(&message, "message", "", "message body")
	cmd.Flags().BoolVar(&perField, "per-field", false, "report the first missing field instead of one combined error")
	return cmd
}
