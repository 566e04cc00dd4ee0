package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/MosheOgalbo/boa-home-assignment/checkout"
	"github.com/MosheOgalbo/boa-home-assignment/internal/config"
)

// options are the persistent flags shared by every subcommand.
type options struct {
	proxyURL   string
	cartURL    string
	storeDir   string
	token      string
	customerID string
	timeout    time.Duration
	verbose    bool
}

func (o *options) identity() checkout.IdentityProvider {
	if o.token == "" {
		return checkout.Anonymous
	}
	return checkout.StaticIdentity{Token: o.token, CustomerID: o.customerID}
}

func (o *options) backend() *checkout.RemoteClient {
	return checkout.NewRemoteClient(o.proxyURL, o.timeout)
}

func (o *options) store() *checkout.FileStore {
	return checkout.NewFileStore(o.storeDir)
}

func newRootCmd(version string) *cobra.Command {
	c := config.NewClient()
	opts := &options{}

	root := &cobra.Command{
		Use:   "savecart",
		Short: "Save checkout lines for later and restore them",
		Long: `savecart talks to the saved cart API the same way the checkout extension does.

Example usage:
  savecart save --line gid://shopify/ProductVariant/1=2 --line gid://shopify/ProductVariant/2=1 --select gid://shopify/ProductVariant/1
  savecart restore --dry-run
  savecart show-local`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd, opts.verbose)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.proxyURL, "proxy-url", c.GetProxyURL(), "saved cart API base URL, ending in /api")
	flags.StringVar(&opts.cartURL, "cart-url", c.GetCartURL(), "storefront base URL for cart mutations")
	flags.StringVar(&opts.storeDir, "store-dir", c.GetStoreDir(), "directory of the local store")
	flags.StringVar(&opts.token, "token", c.GetSessionToken(), "session token (default $SAVECART_TOKEN)")
	flags.StringVar(&opts.customerID, "customer-id", c.GetCustomerID(), "customer the token belongs to")
	flags.DurationVar(&opts.timeout, "timeout", c.GetRequestTimeout(), "HTTP request timeout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	root.AddCommand(newSaveCmd(opts), newRestoreCmd(opts), newShowLocalCmd(opts))
	return root
}

func setupLogging(cmd *cobra.Command, verbose bool) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := cmd.ErrOrStderr()
	if out == os.Stderr {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
	}
	zerolog.SetGlobalLevel(level)
}
