package stubcalc

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"vehicletax/internal/domain/models"
	"vehicletax/pkg/bsdate"
)

const (
	// CalculatePath путь расчётного эндпоинта
	CalculatePath = "/calculate/"

	tokenField  = "csrfmiddlewaretoken"
	tokenHeader = "X-CSRFToken"
	tokenCookie = "csrftoken"
)

// Config настройки заглушки.
type Config struct {
	// CSRFToken если задан, POST без совпадающего токена отклоняется с 403
	CSRFToken string
	DateRange bsdate.Range
	// Registry реестр метрик; nil отключает /metrics
	Registry *prometheus.Registry
}

// NewRouter создает gin-роутер заглушки:
// GET / выдаёт cookie с токеном, POST /calculate/ выполняет расчёт.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.DateRange == (bsdate.Range{}) {
		cfg.DateRange = bsdate.DefaultRange
	}

	router := gin.New()
	router.Use(gin.Recovery())

	var requests *prometheus.CounterVec
	if cfg.Registry != nil {
		requests = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stubcalc",
			Name:      "requests_total",
			Help:      "Calculation requests by HTTP status",
		}, []string{"status"})
		cfg.Registry.MustRegister(requests)
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/", func(c *gin.Context) {
		if cfg.CSRFToken != "" {
			c.SetCookie(tokenCookie, cfg.CSRFToken, 3600, "/", "", false, false)
		}
		c.String(http.StatusOK, "vehicle tax calculator stub")
	})

	router.POST(CalculatePath, func(c *gin.Context) {
		status, body := handleCalculate(c, cfg)
		if requests != nil {
			requests.WithLabelValues(strconv.Itoa(status)).Inc()
		}
		c.JSON(status, body)
	})

	return router
}

func handleCalculate(c *gin.Context, cfg Config) (int, models.CalculationResponse) {
	if cfg.CSRFToken != "" {
		if c.PostForm(tokenField) != cfg.CSRFToken || c.GetHeader(tokenHeader) != cfg.CSRFToken {
			return http.StatusForbidden, models.CalculationResponse{Error: "CSRF verification failed."}
		}
	}

	req := Request{
		RegType:         c.PostForm("reg_type"),
		Category:        c.PostForm("category"),
		CCPower:         c.PostForm("cc_power"),
		LastPaidDate:    c.PostForm("last_paid_date"),
		NextPaymentDate: c.PostForm("next_payment_date"),
	}

	result, err := Calculate(req, cfg.DateRange)
	if err != nil {
		// Бизнес-ошибки отдаются с кодом 200, как это делает исходный сервер
		return http.StatusOK, models.CalculationResponse{Error: err.Error()}
	}
	return http.StatusOK, models.CalculationResponse{Success: true, Result: result}
}
