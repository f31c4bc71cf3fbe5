package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERRO:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "memesurvey",
		Short: "Pesquisa do meme favorito: recebe o formulário e repassa para um webhook do Discord",
		// Sem subcomando, sobe o servidor.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), envFile)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "arquivo .env opcional carregado antes das variáveis de ambiente")

	root.AddCommand(newServeCmd(&envFile), newSubmitCmd())
	return root
}
