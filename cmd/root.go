package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cartCmd "github.com/Alturino/storefront/cart/cmd"
	"github.com/Alturino/storefront/internal/common/constants"
	"github.com/Alturino/storefront/internal/log"
	notificationCmd "github.com/Alturino/storefront/notification/cmd"
	orderCmd "github.com/Alturino/storefront/order/cmd"
	productCmd "github.com/Alturino/storefront/product/cmd"
	userCmd "github.com/Alturino/storefront/user/cmd"
	wishlistCmd "github.com/Alturino/storefront/wishlist/cmd"
)

const defaultLogPath = "/var/log/storefront.log"

func newRootCommand() *cobra.Command {
	var logPath, env string

	rootCmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront backend services",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := log.InitLogger(logPath, env).
				With().
				Str(log.KeyAppName, constants.AppMainStorefront).
				Str("command", cmd.Name()).
				Logger()
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}
	rootCmd.PersistentFlags().StringVar(&logPath, "log-file", defaultLogPath, "path of the rotating log file")
	rootCmd.PersistentFlags().StringVar(&env, "env", "development", "environment, development logs at trace level")

	services := []struct {
		use   string
		short string
		run   func(c context.Context) error
	}{
		{use: "user", short: "Run user service", run: userCmd.RunUserService},
		{use: "product", short: "Run product service", run: productCmd.RunProductService},
		{use: "cart", short: "Run cart service", run: cartCmd.RunCartService},
		{use: "wishlist", short: "Run wishlist service", run: wishlistCmd.RunWishlistService},
		{use: "order", short: "Run order service", run: orderCmd.RunOrderService},
		{use: "notification", short: "Run notification service", run: notificationCmd.RunNotificationService},
	}
	for _, service := range services {
		run := service.run
		rootCmd.AddCommand(&cobra.Command{
			Use:   service.use,
			Short: service.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return run(cmd.Context())
			},
		})
	}

	var seedFile string
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Upsert the product catalog from a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return productCmd.RunSeed(cmd.Context(), seedFile)
		},
	}
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed/products.json", "catalog file to load")
	rootCmd.AddCommand(seedCmd)

	return rootCmd
}

func Start() {
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(c); err != nil {
		logger := log.InitLogger(defaultLogPath, "")
		logger.Error().Err(err).Msgf("error when executing command=%s", err.Error())
		stop()
		os.Exit(1)
	}
}
