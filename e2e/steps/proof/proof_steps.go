package proof

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cucumber/godog"
)

const (
	resolveTimeout = 10 * time.Second
	pollInterval   = 100 * time.Millisecond
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(ctx context.Context, wallet, path string, body any) error
	GET(ctx context.Context, wallet, path string) error
	StatusCode() int
	Body() []byte
	GetResponseField(field string) (any, error)
	Save(key, value string)
	Saved(key string) (string, error)
}

// RegisterSteps registers proof request step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &proofSteps{tc: tc}

	ctx.Step(`^"([^"]*)" requests an age over 18 proof$`, steps.requestAgeOver18)
	ctx.Step(`^"([^"]*)" requests an age over 21 and valid country proof$`, steps.requestAgeOver21AndValidCountry)
	ctx.Step(`^the proof request should resolve to (true|false)$`, steps.shouldResolveTo)
	ctx.Step(`^the proof request should be "([^"]*)"$`, steps.shouldHaveStatus)
	ctx.Step(`^no decryption should be pending$`, steps.noDecryptionPending)
	ctx.Step(`^"([^"]*)" cancels the proof request$`, steps.cancel)
}

type proofSteps struct {
	tc TestContext
}

func (s *proofSteps) requestAgeOver18(ctx context.Context, wallet string) error {
	return s.request(ctx, wallet, "/proofs/age-over-18")
}

func (s *proofSteps) requestAgeOver21AndValidCountry(ctx context.Context, wallet string) error {
	return s.request(ctx, wallet, "/proofs/age-over-21-valid-country")
}

func (s *proofSteps) request(ctx context.Context, wallet, path string) error {
	if err := s.tc.POST(ctx, wallet, path, nil); err != nil {
		return err
	}
	if s.tc.StatusCode() != http.StatusAccepted {
		return nil
	}
	id, err := s.tc.GetResponseField("request_id")
	if err != nil {
		return err
	}
	s.tc.Save("request_id", fmt.Sprint(id))
	return nil
}

// waitResolved polls the saved request until it leaves pending.
func (s *proofSteps) waitResolved(ctx context.Context) (map[string]any, error) {
	id, err := s.tc.Saved("request_id")
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(resolveTimeout)
	for {
		if err := s.tc.GET(ctx, "", "/proofs/"+id); err != nil {
			return nil, err
		}
		status, err := s.tc.GetResponseField("status")
		if err != nil {
			return nil, err
		}
		if status != "pending" {
			result, _ := s.tc.GetResponseField("result")
			return map[string]any{"status": status, "result": result}, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("request %s still pending after %s", id, resolveTimeout)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pollInterval):
		}
	}
}

func (s *proofSteps) shouldResolveTo(ctx context.Context, want string) error {
	got, err := s.waitResolved(ctx)
	if err != nil {
		return err
	}
	expected, _ := strconv.ParseBool(want)
	if got["status"] != "fulfilled" || got["result"] != expected {
		return fmt.Errorf("expected fulfilled with result %v, got %v", expected, got)
	}
	return nil
}

func (s *proofSteps) shouldHaveStatus(ctx context.Context, want string) error {
	id, err := s.tc.Saved("request_id")
	if err != nil {
		return err
	}
	if err := s.tc.GET(ctx, "", "/proofs/"+id); err != nil {
		return err
	}
	got, err := s.tc.GetResponseField("status")
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected request %s to be %s, got %v", id, want, got)
	}
	return nil
}

func (s *proofSteps) noDecryptionPending(ctx context.Context) error {
	if err := s.tc.GET(ctx, "", "/proofs/pending"); err != nil {
		return err
	}
	pending, err := s.tc.GetResponseField("pending")
	if err != nil {
		return err
	}
	if pending != false {
		return fmt.Errorf("expected no pending decryption: %s", s.tc.Body())
	}
	return nil
}

func (s *proofSteps) cancel(ctx context.Context, wallet string) error {
	id, err := s.tc.Saved("request_id")
	if err != nil {
		return err
	}
	return s.tc.POST(ctx, wallet, "/admin/proofs/"+id+"/cancel", nil)
}
