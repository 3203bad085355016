package main

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Shugur-Network/quill/internal/event"
	"github.com/Shugur-Network/quill/internal/kinds"
	"github.com/Shugur-Network/quill/internal/logger"
	"github.com/Shugur-Network/quill/internal/metrics"
	"github.com/Shugur-Network/quill/internal/workers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func newSignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Build and sign a Nostr event",
		Long:  "Build a canonical event within the configured size limits, sign it, and print the signed JSON.",
		RunE:  runSign,
	}

	cmd.Flags().String("key", "", "Signing key as 64 hex characters")
	cmd.Flags().String("key-file", "", "File containing the hex signing key")
	cmd.Flags().String("content", "", "Event content")
	cmd.Flags().Uint16("kind", uint16(event.KindShortTextNote), "Event kind")
	cmd.Flags().Uint64("created-at", 0, "Creation timestamp (unix seconds, default: now)")
	cmd.Flags().StringArray("tag", nil, "Tag as comma-separated elements, e.g. 'l,bitcoin' (repeatable)")
	cmd.Flags().Bool("envelope", false, "Wrap output in a relay envelope frame")
	cmd.Flags().String("device", "", "Device identifier for IOT payloads (kind 5732)")
	cmd.Flags().String("relay", "", "Relay URL for auth events (kind 22242)")
	cmd.Flags().String("challenge", "", "Challenge string for auth events (kind 22242)")
	cmd.Flags().String("batch", "", "Sign one kind 1 note per line of the given file")
	cmd.Flags().Int("workers", 0, "Worker pool size for --batch (default: from config)")
	cmd.Flags().Int("rate", 0, "Events per second for --batch (default: from config)")

	return cmd
}

func runSign(cmd *cobra.Command, args []string) error {
	sk, err := resolveSecretKey(cmd)
	if err != nil {
		return err
	}

	if batchFile, _ := cmd.Flags().GetString("batch"); batchFile != "" {
		return runBatch(cmd, sk, batchFile)
	}

	lim := cfg.Limits.ToLimits()
	content, _ := cmd.Flags().GetString("content")
	kindNum, _ := cmd.Flags().GetUint16("kind")
	createdAt, _ := cmd.Flags().GetUint64("created-at")
	if createdAt == 0 {
		createdAt = uint64(time.Now().Unix())
	}

	tags, err := parseTagFlags(cmd)
	if err != nil {
		return err
	}

	var ev event.Event
	switch k := event.Kind(kindNum); k {
	case event.KindShortTextNote:
		ev, err = kinds.ShortNote(sk, content, createdAt, lim, tags...)
	case event.KindClientAuthentication:
		relayURL, _ := cmd.Flags().GetString("relay")
		challenge, _ := cmd.Flags().GetString("challenge")
		ev, err = kinds.AuthChallenge(sk, relayURL, challenge, createdAt, lim)
	case event.KindIOTPayload:
		deviceID, _ := cmd.Flags().GetString("device")
		ev, err = kinds.IOTPayload(sk, content, deviceID, createdAt, lim)
	case event.KindEncryptedDirectMessage:
		return fmt.Errorf("kind 4 events are encrypted, use 'quill dm seal'")
	default:
		ev, err = kinds.Custom(sk, k, content, createdAt, lim, tags...)
	}
	if err != nil {
		return fmt.Errorf("build event: %w", err)
	}

	return printEvent(cmd, &ev)
}

func printEvent(cmd *cobra.Command, ev *event.Event) error {
	buf := make([]byte, cfg.Limits.CanonicalBuffer+512)

	var (
		n   int
		err error
	)
	if envelope, _ := cmd.Flags().GetBool("envelope"); envelope {
		frame := event.FrameEvent
		if ev.Kind() == event.KindClientAuthentication {
			frame = event.FrameAuth
		}
		n, err = ev.AppendEnvelope(buf, frame)
	} else {
		n, err = ev.AppendJSON(buf)
	}
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(buf[:n]))
	return nil
}

func parseTagFlags(cmd *cobra.Command) ([]event.Tag, error) {
	raw, _ := cmd.Flags().GetStringArray("tag")
	tags := make([]event.Tag, 0, len(raw))
	for _, r := range raw {
		elements := strings.Split(r, ",")
		if len(elements) == 0 || elements[0] == "" {
			return nil, fmt.Errorf("tag %q has no name element", r)
		}
		tags = append(tags, event.Tag(elements))
	}
	return tags, nil
}

// runBatch signs one short note per input line through a worker pool,
// throttled by a shared rate limiter. Output preserves input order.
func runBatch(cmd *cobra.Command, sk [32]byte, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open batch file: %w", err)
	}
	defer f.Close()

	poolSize, _ := cmd.Flags().GetInt("workers")
	if poolSize == 0 {
		poolSize = cfg.Signer.Workers
	}
	rps, _ := cmd.Flags().GetInt("rate")
	if rps == 0 {
		rps = cfg.Signer.RatePerSecond
	}

	if cfg.Metrics.Enabled {
		metrics.RegisterMetrics()
		go serveMetrics(cfg.Metrics.Port)
	}

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read batch file: %w", err)
	}

	limit := rate.Inf
	burst := len(lines)
	if rps > 0 {
		limit = rate.Limit(rps)
		burst = cfg.Signer.Burst
		if burst < 1 {
			burst = 1
		}
	}
	limiter := rate.NewLimiter(limit, burst)

	lim := cfg.Limits.ToLimits()
	pool := workers.NewWorkerPool(poolSize, cfg.Signer.QueueSize)
	results := make([]event.Event, len(lines))
	errs := make([]error, len(lines))

	ctx := cmd.Context()
	start := time.Now()
	for i, line := range lines {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		if err := pool.Submit(ctx, func() {
			results[i], errs[i] = kinds.ShortNote(sk, line, uint64(time.Now().Unix()), lim)
		}); err != nil {
			return err
		}
	}
	pool.Stop()

	var failed int
	scratch := make([]byte, lim.CanonicalBufLen)
	for i := range results {
		if errs[i] != nil {
			failed++
			logger.Warn("batch event rejected",
				zap.Int("line", i+1),
				zap.Error(errs[i]),
			)
			continue
		}
		// Self-check before the event leaves the process.
		ok, err := results[i].Verify(scratch)
		if err != nil || !ok {
			metrics.VerifyResults.WithLabelValues("fail").Inc()
			failed++
			logger.Error("signed event failed self-verification",
				zap.Int("line", i+1),
				zap.String("id", results[i].IDHex()),
			)
			continue
		}
		metrics.VerifyResults.WithLabelValues("ok").Inc()
		if err := printEvent(cmd, &results[i]); err != nil {
			return err
		}
	}

	logger.Info("batch complete",
		zap.Int("signed", len(lines)-failed),
		zap.Int("failed", failed),
		zap.Duration("elapsed", time.Since(start)),
	)
	if failed > 0 {
		return fmt.Errorf("%d of %d events rejected", failed, len(lines))
	}
	return nil
}

func serveMetrics(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	logger.Info("metrics endpoint up", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("metrics endpoint failed", zap.Error(err))
	}
}
