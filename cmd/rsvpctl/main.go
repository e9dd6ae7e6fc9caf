package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ourday/rsvp/internal/config"
	rsvp "github.com/ourday/rsvp/sdk/go"
)

var rootCmd = &cobra.Command{
	Use:           "rsvpctl",
	Short:         "Command line tool for the RSVP server",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit an RSVP to a running server",
	RunE:  runSend,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration with secrets masked",
	RunE:  runConfig,
}

var qrCmd = &cobra.Command{
	Use:   "qr [file]",
	Short: "Write the invitation QR code to a PNG file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQR,
}

var sendFlags struct {
	server     string
	name       string
	email      string
	attending  string
	numPersons int
	timeout    time.Duration
}

var qrFlags struct {
	url  string
	size int
}

func init() {
	sendCmd.Flags().StringVar(&sendFlags.server, "server", "http://localhost:8080", "RSVP server base URL")
	sendCmd.Flags().StringVar(&sendFlags.name, "name", "", "guest name")
	sendCmd.Flags().StringVar(&sendFlags.email, "email", "", "guest email address")
	sendCmd.Flags().StringVar(&sendFlags.attending, "attending", "", `"yes" or "no"`)
	sendCmd.Flags().IntVar(&sendFlags.numPersons, "num-persons", 1, "number of persons attending")
	sendCmd.Flags().DurationVar(&sendFlags.timeout, "timeout", 30*time.Second, "request timeout")

	qrCmd.Flags().StringVar(&qrFlags.url, "url", "", "URL to encode (default page.public_url)")
	qrCmd.Flags().IntVar(&qrFlags.size, "size", 512, "edge length in pixels")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(qrCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runSend(cmd *cobra.Command, args []string) error {
	sub := rsvp.Submission{
		Name:      sendFlags.name,
		Email:     sendFlags.email,
		Attending: strings.TrimSpace(sendFlags.attending),
	}
	if sub.Attending == rsvp.AttendingYes {
		sub.NumPersons = rsvp.PartyOf(sendFlags.numPersons)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), sendFlags.timeout)
	defer cancel()

	client := rsvp.NewClient(rsvp.Config{BaseURL: sendFlags.server, UserAgent: "rsvpctl"})
	receipt, err := client.Submit(ctx, sub)
	if err != nil {
		printAPIError(cmd.ErrOrStderr(), err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (id %s via %s)\n", receipt.Message, receipt.ID, receipt.Provider)
	return nil
}

func printAPIError(w io.Writer, err error) {
	apiErr, ok := rsvp.IsAPIError(err)
	if !ok || len(apiErr.Details) == 0 {
		return
	}
	fields := make([]string, 0, len(apiErr.Details))
	for field := range apiErr.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		fmt.Fprintf(w, "  %s: %s\n", field, apiErr.Details[field])
	}
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg.Redacted())
}

func runQR(cmd *cobra.Command, args []string) error {
	target := qrFlags.url
	if target == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		target = cfg.Page.PublicURL
	}
	if target == "" {
		return errors.New("no URL to encode: pass --url or set page.public_url")
	}

	file := "invitation-qr.png"
	if len(args) == 1 {
		file = args[0]
	}

	if err := qrcode.WriteFile(target, qrcode.Medium, qrFlags.size, file); err != nil {
		return fmt.Errorf("failed to write QR code: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s for %s\n", file, target)
	return nil
}
