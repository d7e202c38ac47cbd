package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"propertymasters_backend/internal/model"
	"propertymasters_backend/pkg/config"
	"propertymasters_backend/pkg/email"
)

// SendTestEmailCmd renders a sample inquiry notification and sends it
// through the configured transport, to check credentials before deploying.
func SendTestEmailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send-test-email",
		Short: "Send a sample inquiry notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			to, _ := cmd.Flags().GetString("to")

			cfg := config.Load()
			if to != "" {
				cfg.Email.To = to
			}

			svc, err := email.NewFromConfig(cmd.Context(), cfg.Email)
			if err != nil {
				return err
			}

			phone := "780-555-0100"
			sample := model.ContactInquiry{
				ID:          "test",
				Name:        "Test Sender",
				Email:       "test@example.com",
				Phone:       &phone,
				Message:     "This is a test notification.\nIf you can read this, email delivery works.",
				InquiryType: model.InquiryTypeGeneral,
				Status:      model.InquiryStatusPending,
				CreatedAt:   time.Now().UTC(),
			}

			if err := svc.SendInquiryNotification(cmd.Context(), sample); err != nil {
				return fmt.Errorf("test email failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Test email sent to %s via %s\n", cfg.Email.To, svc.TransportName())
			return nil
		},
	}

	cmd.Flags().String("to", "", "recipient (defaults to TO_EMAIL)")
	return cmd
}
