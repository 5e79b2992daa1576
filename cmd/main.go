package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"Lunch-App/internal/config"
	"Lunch-App/internal/domain/model"
	"Lunch-App/internal/domain/taxonomy"
	"Lunch-App/internal/handler"
	"Lunch-App/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := config.NewViper()
	var cfgFile string
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "lunch-app",
		Short:         "近くの飲食店を推薦するランチアプリのサーバー/CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !config.LoadDotEnv() {
				fmt.Fprintln(os.Stderr, "Warning: .env file not found, using system environment variables")
			}
			if err := config.ReadConfigFile(v, cfgFile); err != nil {
				return err
			}
			loaded, err := config.Load(v)
			if err != nil {
				return err
			}
			cfg = loaded
			logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "設定ファイル（YAML/TOML/JSON）")
	root.PersistentFlags().String("log-level", "", "ログレベル (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "ログ形式 (json, console)")
	bindFlag(v, config.KeyLogLevel, root.PersistentFlags().Lookup("log-level"))
	bindFlag(v, config.KeyLogFormat, root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(
		newServeCmd(v, func() *config.Config { return cfg }),
		newRecommendCmd(v, func() *config.Config { return cfg }),
		newCategoriesCmd(),
	)
	return root
}

func newServeCmd(v *viper.Viper, cfg func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "HTTP APIサーバーを起動する",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, v, cfg())
		},
	}
	cmd.Flags().Int("port", 0, "待ち受けポート（既定: PORT環境変数または8080）")
	bindFlag(v, config.KeyPort, cmd.Flags().Lookup("port"))
	return cmd
}

func runServer(ctx context.Context, v *viper.Viper, cfg *config.Config) error {
	gin.SetMode(cfg.Server.GinMode)

	a := buildApp(ctx, v, cfg)
	defer a.Close()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler.NewRouter(a.handlers()),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Int("port", cfg.Server.Port).Msg("🚀 Lunch-App server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("🛑 シャットダウン中...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newRecommendCmd(v *viper.Viper, cfg func() *config.Config) *cobra.Command {
	var (
		lat, lng    float64
		radius      int
		cuisines    []string
		priceMin    int
		priceMax    int
		maxDistance float64
		timeOfDay   string
		weather     string
		userID      string
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "指定地点の推薦結果をJSONで出力する",
		RunE: func(cmd *cobra.Command, args []string) error {
			if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
				return fmt.Errorf("緯度経度が範囲外です: %f,%f", lat, lng)
			}
			if timeOfDay != "" && !model.IsValidTimeOfDay(timeOfDay) {
				return fmt.Errorf("未知の時間帯です: %s", timeOfDay)
			}

			req := &model.RecommendationRequest{
				Location:  &model.Location{Latitude: lat, Longitude: lng},
				UserID:    userID,
				Weather:   weather,
				TimeOfDay: timeOfDay,
				Radius:    radius,
			}
			if userID == "" || cmd.Flags().Changed("cuisine") || cmd.Flags().Changed("price-min") ||
				cmd.Flags().Changed("price-max") || cmd.Flags().Changed("max-distance") {
				prefs := model.DefaultPreferences()
				prefs.CuisineTypes = cuisines
				prefs.PriceRange = model.PriceRange{priceMin, priceMax}
				prefs.MaxDistance = maxDistance
				if !prefs.PriceRange.Valid() {
					return fmt.Errorf("価格帯が不正です: [%d, %d]", priceMin, priceMax)
				}
				req.Preferences = &prefs
			}

			a := buildApp(cmd.Context(), v, cfg())
			defer a.Close()

			resp, err := a.recommendationUseCase.GenerateRecommendations(cmd.Context(), req)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	defaults := model.DefaultPreferences()
	def := model.DefaultLocation()
	cmd.Flags().Float64Var(&lat, "lat", def.Latitude, "緯度")
	cmd.Flags().Float64Var(&lng, "lng", def.Longitude, "経度")
	cmd.Flags().IntVar(&radius, "radius", 0, "検索半径（メートル）")
	cmd.Flags().StringSliceVar(&cuisines, "cuisine", nil, "好みの料理ジャンル（複数指定可）")
	cmd.Flags().IntVar(&priceMin, "price-min", defaults.PriceRange.Min(), "価格帯の下限 (1-4)")
	cmd.Flags().IntVar(&priceMax, "price-max", defaults.PriceRange.Max(), "価格帯の上限 (1-4)")
	cmd.Flags().Float64Var(&maxDistance, "max-distance", defaults.MaxDistance, "最大距離（メートル、0で無制限）")
	cmd.Flags().StringVar(&timeOfDay, "time-of-day", "", "時間帯 (breakfast, lunch, dinner, snack)")
	cmd.Flags().StringVar(&weather, "weather", "", "天気")
	cmd.Flags().StringVar(&userID, "user", "", "保存済みの好み設定を使うユーザーID")
	return cmd
}

func newCategoriesCmd() *cobra.Command {
	var (
		keyword string
		flat    bool
	)

	cmd := &cobra.Command{
		Use:   "categories [code]",
		Short: "飲食カテゴリ分類を表示する",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if keyword != "" {
				code := taxonomy.CodeForKeyword(keyword)
				fmt.Fprintf(w, "%s\t%s\n", code, taxonomy.CategoryName(code))
				return nil
			}
			if flat {
				for _, code := range taxonomy.AllCodes() {
					fmt.Fprintf(w, "%s\t%s\n", code, taxonomy.CategoryName(code))
				}
				return nil
			}

			code := taxonomy.DefaultCode
			if len(args) == 1 {
				code = args[0]
			}
			node, ok := taxonomy.Lookup(code)
			if !ok {
				return fmt.Errorf("カテゴリが見つかりません: %s", code)
			}
			printCategory(cmd, node, 0)
			return nil
		},
	}
	cmd.Flags().StringVar(&keyword, "keyword", "", "キーワードからPOIコードを推定する")
	cmd.Flags().BoolVar(&flat, "flat", false, "全コードを先行順に1行ずつ表示する")
	return cmd
}

func printCategory(cmd *cobra.Command, node *model.POICategory, depth int) {
	line := fmt.Sprintf("%s%s\t%s", strings.Repeat("  ", depth), node.Code, node.Name)
	if len(node.Keywords) > 0 {
		line += "\t[" + strings.Join(node.Keywords, ", ") + "]"
	}
	fmt.Fprintln(cmd.OutOrStdout(), line)
	for _, sub := range node.Subcategories {
		printCategory(cmd, sub, depth+1)
	}
}

// bindFlag はフラグをviperのキーに対応付ける（フラグが明示された場合のみ環境変数より優先）
func bindFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	_ = v.BindPFlag(key, flag)
}
