package cmd

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/gitmesam/godbg/internal/symserver"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve <object-file>",
	Short: "Serve an object's parsed symbols over the symbol-query protocol",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		mod, err := parseObject(args[0], 0)
		if err != nil {
			return err
		}

		tlsConf, err := selfSignedTLSConfig()
		if err != nil {
			return fmt.Errorf("serve: generating TLS config: %w", err)
		}

		srv := &symserver.Server{DB: mod.DB, Log: log}
		fmt.Printf("serving %s on %s (protocol %s)\n", args[0], serveAddr, symserver.ProtocolVersion)
		return srv.Serve(c.Context(), serveAddr, tlsConf)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:4242", "address to listen on")
}

// selfSignedTLSConfig builds an in-memory, self-signed certificate for the
// symserver listener. QUIC requires TLS; godbg has no external PKI, so it
// generates one ephemeral keypair per server process, the conventional
// bootstrap quic-go's own examples use for a minimal listener.
func selfSignedTLSConfig() (*tls.Config, error) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	template := x509.Certificate{SerialNumber: big.NewInt(1)}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		return nil, err
	}
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})
	cert, err := tls.X509KeyPair(certPEM, keyPEM)
	if err != nil {
		return nil, err
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		NextProtos:   []string{"godbg-symserver"},
	}, nil
}
