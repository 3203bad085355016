package main

import (
	"crypto/rand"
	"fmt"
	"time"

	"github.com/Shugur-Network/quill/internal/crypto"
	"github.com/Shugur-Network/quill/internal/kinds"
	"github.com/Shugur-Network/quill/internal/nip04"
	"github.com/spf13/cobra"
)

func newDMCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dm",
		Short: "Seal and open encrypted direct messages",
	}
	cmd.AddCommand(newDMSealCmd(), newDMOpenCmd())
	return cmd
}

func newDMSealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Encrypt a message to a recipient and sign it as a kind 4 event",
		RunE:  runDMSeal,
	}
	cmd.Flags().String("key", "", "Signing key as 64 hex characters")
	cmd.Flags().String("key-file", "", "File containing the hex signing key")
	cmd.Flags().String("to", "", "Recipient public key as 64 hex characters")
	cmd.Flags().String("content", "", "Plaintext message")
	cmd.Flags().Uint64("created-at", 0, "Creation timestamp (unix seconds, default: now)")
	cmd.Flags().Bool("envelope", false, "Wrap output in a relay envelope frame")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func runDMSeal(cmd *cobra.Command, args []string) error {
	sk, err := resolveSecretKey(cmd)
	if err != nil {
		return err
	}
	toHex, _ := cmd.Flags().GetString("to")
	recipient, err := decodePublicKey(toHex)
	if err != nil {
		return err
	}
	content, _ := cmd.Flags().GetString("content")
	createdAt, _ := cmd.Flags().GetUint64("created-at")
	if createdAt == 0 {
		createdAt = uint64(time.Now().Unix())
	}

	var iv [nip04.IVSize]byte
	if _, err := rand.Read(iv[:]); err != nil {
		return fmt.Errorf("generate iv: %w", err)
	}

	ev, err := kinds.DirectMessage(sk, recipient, content, iv, createdAt, cfg.Limits.ToLimits())
	if err != nil {
		return fmt.Errorf("seal message: %w", err)
	}
	return printEvent(cmd, &ev)
}

func newDMOpenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open",
		Short: "Decrypt a direct message payload from a known sender",
		Long:  "Decrypt a 'base64(ct)?iv=base64(iv)' payload using the shared secret with the sender's public key.",
		RunE:  runDMOpen,
	}
	cmd.Flags().String("key", "", "Receiving key as 64 hex characters")
	cmd.Flags().String("key-file", "", "File containing the hex receiving key")
	cmd.Flags().String("from", "", "Sender public key as 64 hex characters")
	cmd.Flags().String("wire", "", "Encrypted payload")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("wire")
	return cmd
}

func runDMOpen(cmd *cobra.Command, args []string) error {
	sk, err := resolveSecretKey(cmd)
	if err != nil {
		return err
	}
	fromHex, _ := cmd.Flags().GetString("from")
	sender, err := decodePublicKey(fromHex)
	if err != nil {
		return err
	}
	wire, _ := cmd.Flags().GetString("wire")

	key, err := crypto.SharedSecret(sk, sender)
	if err != nil {
		return fmt.Errorf("derive shared secret: %w", err)
	}

	maxLen := cfg.Limits.MaxContentLen
	codec := nip04.NewCodec(maxLen)
	plain := make([]byte, maxLen)
	n, err := codec.Decrypt(plain, wire, key)
	if err != nil {
		return fmt.Errorf("open message: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(plain[:n]))
	return nil
}
