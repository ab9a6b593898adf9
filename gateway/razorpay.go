package gateway

import (
	"context"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lawconnect/models"
)

// RazorpayGateway opens a hosted Razorpay checkout: it serves the checkout
// page from an ephemeral local HTTP server, points the browser at it, and
// waits for the page to post back either the signed success triple or the
// gateway-reported failure. The widget owns its own lifecycle and
// cancellation UI; no timeout is enforced here beyond the caller's context.
type RazorpayGateway struct {
	KeyID  string
	Addr   string
	Logger *zap.Logger

	// OpenBrowser launches the checkout URL; overridable in tests.
	OpenBrowser func(url string) error
}

func NewRazorpayGateway(keyID, addr string, logger *zap.Logger) *RazorpayGateway {
	return &RazorpayGateway{
		KeyID:       keyID,
		Addr:        addr,
		Logger:      logger,
		OpenBrowser: openBrowser,
	}
}

type checkoutOutcome struct {
	result  *models.PaymentResult
	failure *models.CheckoutFailure
}

// Checkout runs one checkout attempt end to end.
func (g *RazorpayGateway) Checkout(ctx context.Context, order models.PaymentOrder, prefill models.Prefill) (*models.PaymentResult, error) {
	attemptID := uuid.New().String()

	outcome := make(chan checkoutOutcome, 1)
	var once sync.Once
	deliver := func(o checkoutOutcome) {
		// First callback wins; the page cannot fire both, but a reload could
		// re-post, so later deliveries are dropped.
		once.Do(func() { outcome <- o })
	}

	router := g.buildRouter(order, prefill, attemptID, deliver)

	listener, err := net.Listen("tcp", g.Addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start checkout listener: %w", err)
	}
	srv := &http.Server{Handler: router}
	go func() {
		if serveErr := srv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			g.Logger.Warn("checkout server stopped", zap.Error(serveErr))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	checkoutURL := fmt.Sprintf("http://%s/", listener.Addr().String())
	g.Logger.Info("opening payment checkout",
		zap.String("order_id", order.ID),
		zap.String("attempt_id", attemptID),
		zap.String("url", checkoutURL))
	if err := g.OpenBrowser(checkoutURL); err != nil {
		g.Logger.Warn("could not open browser, open the checkout URL manually",
			zap.String("url", checkoutURL), zap.Error(err))
	}

	select {
	case o := <-outcome:
		if o.failure != nil {
			return nil, &CheckoutError{Code: o.failure.Code, Description: o.failure.Description}
		}
		return o.result, nil
	case <-ctx.Done():
		return nil, ErrCheckoutAbandoned
	}
}

func (g *RazorpayGateway) buildRouter(order models.PaymentOrder, prefill models.Prefill, attemptID string, deliver func(checkoutOutcome)) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())
	router.SetHTMLTemplate(checkoutTemplate)

	router.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "checkout", gin.H{
			"KeyID":     g.KeyID,
			"OrderID":   order.ID,
			"Amount":    int64(order.Amount * 100), // smallest currency unit
			"Currency":  order.Currency,
			"Prefill":   prefill,
			"AttemptID": attemptID,
		})
	})

	router.POST("/callback", func(c *gin.Context) {
		var result models.PaymentResult
		if err := c.ShouldBindJSON(&result); err != nil || result.PaymentID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment callback"})
			return
		}
		deliver(checkoutOutcome{result: &result})
		c.JSON(http.StatusOK, gin.H{"message": "Payment received, you can close this tab"})
	})

	router.POST("/failure", func(c *gin.Context) {
		var failure models.CheckoutFailure
		if err := c.ShouldBindJSON(&failure); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid failure callback"})
			return
		}
		deliver(checkoutOutcome{failure: &failure})
		c.JSON(http.StatusOK, gin.H{"message": "Payment failure recorded"})
	})

	return router
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}

var checkoutTemplate = template.Must(template.New("checkout").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>LawConnect Checkout</title>
  <script src="https://checkout.razorpay.com/v1/checkout.js"></script>
</head>
<body>
  <p>Opening secure checkout...</p>
  <script>
    function post(path, body) {
      return fetch(path, {
        method: "POST",
        headers: {"Content-Type": "application/json"},
        body: JSON.stringify(body)
      });
    }
    var rzp = new Razorpay({
      key: {{.KeyID}},
      order_id: {{.OrderID}},
      amount: {{.Amount}},
      currency: {{.Currency}},
      name: "LawConnect",
      description: "Legal consultation",
      notes: {attempt_id: {{.AttemptID}}},
      prefill: {
        name: {{.Prefill.Name}},
        email: {{.Prefill.Email}},
        contact: {{.Prefill.Phone}}
      },
      handler: function (response) {
        post("/callback", response).then(function () {
          document.body.innerHTML = "<p>Payment received. You can close this tab.</p>";
        });
      }
    });
    rzp.on("payment.failed", function (response) {
      post("/failure", {
        code: response.error.code,
        description: response.error.description
      }).then(function () {
        document.body.innerHTML = "<p>Payment failed. You can close this tab.</p>";
      });
    });
    rzp.open();
  </script>
</body>
</html>`))
