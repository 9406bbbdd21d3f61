package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"vibin_chats/config"
	"vibin_chats/controllers"
	"vibin_chats/routes"
	"vibin_chats/services"
	"vibin_chats/socket"
	"vibin_chats/utils"
)

var configPath string

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. The root only prints usage; serving is explicit.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vibin-chats",
		Short:         "Vibin chat list service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("CONFIG_FILE"), "path to a YAML config file")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat list over HTTP and Socket.IO",
		RunE:  runServe,
	}

	var token string
	rowsCmd := &cobra.Command{
		Use:   "rows",
		Short: "Print one chat list load for a session token as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRows(cmd.Context(), token)
		},
	}
	rowsCmd.Flags().StringVar(&token, "token", "", "session token")
	_ = rowsCmd.MarkFlagRequired("token")

	rootCmd.AddCommand(serveCmd, rowsCmd)
	return rootCmd
}

// app holds the wired services shared by every command
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	chatList *services.ChatListService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	logger.Info("Initializing AWS clients...", zap.String("region", cfg.AWSRegion))
	awsCfg, err := services.LoadAWSConfig(ctx, cfg.AWSRegion)
	if err != nil {
		return nil, err
	}
	dynamoService := services.NewDynamoService(dynamodb.NewFromConfig(awsCfg), logger)

	var avatars services.AvatarURLer
	if cfg.S3Bucket != "" {
		avatars = services.NewAvatarService(awsCfg, cfg.S3Bucket, cfg.AvatarURLTTL)
	}

	directory := services.NewDirectoryService(dynamoService, services.DirectoryTables{
		Chats:   cfg.Tables.Chats,
		Matches: cfg.Tables.Matches,
		Users:   cfg.Tables.Users,
	}, logger)
	sessions := services.NewSessionService(dynamoService, cfg.Tables.Sessions, logger)
	resolver := services.NewMatchResolver(directory, avatars, logger)
	aggregator := services.NewChatAggregator(directory, resolver, logger)

	return &app{
		cfg:      cfg,
		logger:   logger,
		chatList: services.NewChatListService(sessions, aggregator, logger),
	}, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	socketServer := socket.NewSocketServer(socket.NewHandlers(a.chatList, a.chatList, a.cfg.RequestTimeout, a.logger))
	go func() {
		if err := socketServer.Serve(); err != nil {
			a.logger.Error("❌ Socket server stopped", zap.Error(err))
		}
	}()
	defer socketServer.Close()

	r := mux.NewRouter()
	routes.RegisterRoutes(r)
	routes.RegisterChatRoutes(r, controllers.NewChatController(a.chatList, a.cfg.RequestTimeout, a.logger))
	r.PathPrefix("/socket.io/").Handler(socketServer)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   a.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Session-Token"},
		AllowCredentials: true,
	}).Handler(r)

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           corsHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting server", zap.String("port", a.cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-quit:
	}

	a.logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func runRows(ctx context.Context, token string) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.logger.Sync()

	ctx, cancel := context.WithTimeout(ctx, a.cfg.RequestTimeout)
	defer cancel()

	userID, err := a.chatList.Authenticate(ctx, token)
	if err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}
	rows, err := a.chatList.LoadRows(ctx, userID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(services.NewChatListResponse(rows))
}
