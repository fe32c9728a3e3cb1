// Package crawl provides the shared HTTP client used by all scrapers and
// downloaders. It bundles a cookie jar, a browser user agent, a cloudflare
// bypass transport and a politeness rate limit so individual scrapers only
// have to describe what they fetch.
package crawl

import (
	"net/http/cookiejar"
	"time"

	"vna-etl/lib/restyutil"
	"vna-etl/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type Options struct {
	BaseURL string
	// requests per second, 0 means the default of 2
	RequestsPerSecond float64
	Timeout           time.Duration
	TracerName        string
	// when set, every request/response pair is dumped to a file in
	// this directory (debug log level only)
	DebugCaptureDir string
}

func NewClient(opts Options) (*resty.Client, error) {
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 2
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	if opts.BaseURL != "" {
		client.SetBaseURL(opts.BaseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", userAgent)
	client.SetTimeout(timeout)

	// max burst >= ceil(rps) just means that no requests will be dropped
	limiter := rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})

	switch {
	case opts.DebugCaptureDir != "":
		restyutil.InstrumentClient(
			client,
			otel.Tracer(opts.TracerName),
			restyutil.NewFilesystemOutput(opts.DebugCaptureDir),
		)
	case opts.TracerName != "":
		telemetry.InstrumentResty(client, opts.TracerName)
	}

	return client, nil
}
