package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MarcoPoloResearchLab/tubedeck/internal/auth"
)

func newLoginCommand() *cobra.Command {
	var (
		googleIDToken string
		subject       string
		email         string
		name          string
		picture       string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Issue a dashboard session token",
		Long: "Issue a signed session token, either from a verified Google ID token " +
			"or from an explicit local identity for development.",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAppEnv()
			if err != nil {
				return err
			}
			defer env.Close()

			var identity auth.Identity
			switch {
			case strings.TrimSpace(googleIDToken) != "":
				verifier, err := auth.NewGoogleVerifier(auth.GoogleVerifierConfig{
					Audience: env.config.GoogleClientID,
					JWKSURL:  env.config.GoogleJWKSURL,
					Logger:   env.logger,
				})
				if err != nil {
					return err
				}
				identity, err = verifier.Verify(cmd.Context(), googleIDToken)
				if err != nil {
					return err
				}
			case strings.TrimSpace(subject) != "":
				identity = auth.Identity{
					Subject:     strings.TrimSpace(subject),
					Email:       strings.TrimSpace(email),
					DisplayName: strings.TrimSpace(name),
					AvatarURL:   strings.TrimSpace(picture),
				}
			default:
				return errors.New("either --google-id-token or --subject is required")
			}

			issuer := auth.NewSessionIssuer(auth.SessionIssuerConfig{
				SigningSecret: []byte(env.config.SessionSigningSecret),
				Issuer:        env.config.SessionIssuer,
				Audience:      env.config.SessionAudience,
				TokenTTL:      env.config.SessionTTL,
			})
			token, expiresIn, err := issuer.Issue(cmd.Context(), identity)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Signed in as %s (expires in %ds).\n", identity.Subject, expiresIn)
			fmt.Fprintf(out, "export TUBEDECK_SESSION_TOKEN=%s\n", token)
			return nil
		},
	}

	cmd.Flags().StringVar(&googleIDToken, "google-id-token", "", "Google ID token to verify")
	cmd.Flags().StringVar(&subject, "subject", "", "Local identity subject (development sign-in)")
	cmd.Flags().StringVar(&email, "email", "", "Local identity email")
	cmd.Flags().StringVar(&name, "name", "", "Local identity display name")
	cmd.Flags().StringVar(&picture, "picture", "", "Local identity avatar URL")

	return cmd
}
