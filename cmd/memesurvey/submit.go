package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meme-survey/client"

	"github.com/spf13/cobra"
)

var errSubmitFailed = errors.New("envio não concluído")

func newSubmitCmd() *cobra.Command {
	var (
		server  string
		form    client.Form
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Envia uma resposta da pesquisa para um servidor memesurvey",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			out := cmd.OutOrStdout()
			res := client.New(server).Submit(ctx, form, func(st client.Status) {
				if st.Text == "" {
					return
				}
				if st.IsError {
					fmt.Fprintln(cmd.ErrOrStderr(), st.Text)
					return
				}
				fmt.Fprintln(out, st.Text)
			})
			if res.Status.IsError {
				return errSubmitFailed
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&server, "server", "http://localhost:3000", "URL base do servidor")
	f.StringVar(&form.Name, "name", "", "seu nome")
	f.StringVar(&form.Email, "email", "", "seu e-mail")
	f.StringVar(&form.Favorite, "favorite", "", "seu meme favorito (obrigatório)")
	f.StringVar(&form.Why, "why", "", "por que esse meme")
	f.DurationVar(&timeout, "timeout", 0, "tempo máximo do envio (0 = sem limite)")
	return cmd
}
