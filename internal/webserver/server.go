package webserver

import (
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/cpearam/fastfood-kiosk/config"
)

// DBContextKey is the echo context key the request-scoped gorm handle is
// stored under.
const DBContextKey = "gdb"

var server *WebServer

type WebServer struct {
	cfg  *config.AppConfig
	db   *gorm.DB
	root *echo.Echo
	api  *echo.Group
}

func Init(cfg *config.AppConfig, db *gorm.DB) {
	server = NewWebServer(cfg, db)
}

func NewWebServer(cfg *config.AppConfig, db *gorm.DB) *WebServer {
	s := &WebServer{cfg: cfg, db: db, root: echo.New()}
	s.root.Pre(middleware.RemoveTrailingSlash())
	s.root.Use(middleware.Recover())
	s.root.Use(requestLogger())
	s.root.HideBanner = true
	s.root.HidePort = true
	s.root.Debug = cfg.System.Debug
	s.root.JSONSerializer = jsonSerializer{}

	s.api = s.root.Group("/api")
	s.api.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(DBContextKey, s.db)
			return next(c)
		}
	})
	return s
}

// Instance returns the active server, used by tests.
func Instance() *WebServer {
	return server
}

// Listen starts the HTTP server and blocks.
func Listen() error {
	return server.Start()
}

func (s *WebServer) Start() error {
	zap.S().Infof("Starting kiosk API server %s", s.cfg.GetListenAddr())
	return s.root.Start(s.cfg.GetListenAddr())
}

// Echo exposes the root engine, used by tests.
func (s *WebServer) Echo() *echo.Echo {
	return s.root
}

func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", time.Since(v.StartTime)),
			)
			return nil
		},
	})
}

// jsonSerializer plugs json-iterator into echo.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsoniter.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := jsoniter.NewDecoder(c.Request().Body).Decode(i)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("Malformed JSON request: %v", err)).SetInternal(err)
	}
	return nil
}
