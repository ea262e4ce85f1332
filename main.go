package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"image-management-server/internal/config"
	"image-management-server/internal/consts"
	"image-management-server/internal/db"
	"image-management-server/internal/di"
	"image-management-server/internal/logging"
	"image-management-server/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	exportRoutes := flag.Bool("export", false, "导出路由到 routes.json 并退出")
	configDir := flag.String("config", "config", "配置文件目录")
	flag.Parse()

	config.InitConfig(*configDir)
	cfg := config.Get()
	logging.Init(cfg.Log)

	db.InitDB()

	application, err := di.InitializeApplication(db.DB, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("❌ 应用初始化失败")
	}
	if cfg.Database.Seed {
		if err := application.Owners.SeedSampleData(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("❌ 写入示例数据失败")
		}
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Warn().Err(err).Msg("⚠️ 关闭外部连接失败")
		}
	}()

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(), gin.CustomRecovery(middleware.HandlePanics()))
	applyTrustedProxies(r, cfg.Server.TrustedProxies)
	application.Router.Init(r)
	r.NoRoute(getNoRouteHandler())

	// 导出模式
	if *exportRoutes {
		exportAPI(r)
		return // 导出后直接退出程序，不启动 Web 服务
	}

	printWelcomeMessage()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("🚀 服务启动成功")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("❌ 服务启动失败")
		}
	}()

	// 等待中断信号关闭服务器（设置 5 秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("🛑 正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("❌ 服务强制关闭")
		return
	}
	log.Info().Msg("✅ 服务已退出")
}

// getNoRouteHandler 未匹配的路径统一返回 JSON 404
func getNoRouteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": consts.MsgRouteNotFound})
	}
}

// applyTrustedProxies 按配置设置可信代理；空值或无效列表时不信任任何代理，ClientIP 取 RemoteAddr
func applyTrustedProxies(r *gin.Engine, raw string) {
	proxies := splitTrustedProxyList(raw)
	if len(proxies) == 0 {
		_ = r.SetTrustedProxies(nil)
		return
	}
	if err := r.SetTrustedProxies(proxies); err != nil {
		log.Warn().Err(err).Str("trusted_proxies", raw).Msg("⚠️ 可信代理配置无效，已禁用代理信任")
		_ = r.SetTrustedProxies(nil)
	}
}

func splitTrustedProxyList(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		switch r {
		case ',', ';', ' ', '\n', '\t', '\r':
			return true
		}
		return false
	})
}

func printWelcomeMessage() {
	cfg := config.Get()

	fmt.Println()
	fmt.Println(" ┌───────────────────────────────────────────────────────┐")
	fmt.Printf(" │   🚀  %s\n", consts.ApplicationName)
	fmt.Println(" ├───────────────────────────────────────────────────────┤")
	fmt.Printf(" │   📦  版本     : %s\n", consts.ApplicationVersion)
	fmt.Printf(" │   🗄️   数据库   : %s\n", cfg.Database.Type)
	fmt.Printf(" │   🔥  服务端口 : %s\n", cfg.Server.Port)
	fmt.Println(" └───────────────────────────────────────────────────────┘")
	fmt.Println()
}

func exportAPI(r *gin.Engine) {
	routes := r.Routes()

	// 简单的结构体，只留关键信息
	type RouteInfo struct {
		Method  string `json:"method"`
		Path    string `json:"path"`
		Handler string `json:"handler"`
	}

	var exportList []RouteInfo
	for _, route := range routes {
		exportList = append(exportList, RouteInfo{
			Method:  route.Method,
			Path:    route.Path,
			Handler: route.Handler,
		})
	}

	file, _ := json.MarshalIndent(exportList, "", "  ")
	if err := os.WriteFile("routes.json", file, 0644); err != nil {
		log.Error().Err(err).Msg("❌ 导出路由失败")
		return
	}

	log.Info().Int("count", len(exportList)).Msg("✅ 路由已成功导出到 routes.json")
}
