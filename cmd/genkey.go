package cmd

import (
	"Storefront/jwt"
	"fmt"
	"github.com/spf13/cobra"
)

func genkeyCmd() *cobra.Command {
	var (
		privateKeyPath string
		publicKeyPath  string
		bits           int
	)

	cmd := &cobra.Command{
		Use:   "genkey",
		Short: "產生簽發Token用的RSA金鑰對",
		RunE: func(cmd *cobra.Command, args []string) error {
			if bits < 2048 {
				return fmt.Errorf("key size %d too small, need at least 2048", bits)
			}
			if err := jwt.GenerateKeyPair(privateKeyPath, publicKeyPath, bits); err != nil {
				return fmt.Errorf("generate key pair: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "private key: %s\npublic key: %s\n", privateKeyPath, publicKeyPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&privateKeyPath, "private", "jwt/private_key.pem", "私鑰輸出路徑")
	cmd.Flags().StringVar(&publicKeyPath, "public", "jwt/public_key.pem", "公鑰輸出路徑")
	cmd.Flags().IntVar(&bits, "bits", 2048, "金鑰長度")

	return cmd
}
