package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errBoom = errors.New("boom")

func failing() error { return errBoom }
func passing() error { return nil }

func testConfig() Config {
	return Config{
		FailureThreshold:    3,
		SuccessThreshold:    2,
		Timeout:             50 * time.Millisecond,
		HalfOpenMaxRequests: 3,
	}
}

func TestClosedPassesThrough(t *testing.T) {
	cb := New(testConfig())

	if err := cb.Execute(passing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cb.Execute(failing); !errors.Is(err, errBoom) {
		t.Fatalf("want the function's error back, got %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Errorf("state = %v, want closed", cb.GetState())
	}
}

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb := New(testConfig())

	for i := 0; i < 3; i++ {
		if err := cb.Execute(failing); !errors.Is(err, errBoom) {
			t.Fatalf("call %d: got %v", i, err)
		}
	}

	// 阈值已到，下一次调用直接被拒绝
	if err := cb.Execute(passing); !errors.Is(err, ErrOpen) {
		t.Fatalf("want ErrOpen, got %v", err)
	}
	if cb.GetState() != StateOpen {
		t.Errorf("state = %v, want open", cb.GetState())
	}
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := New(testConfig())

	cb.Execute(failing)
	cb.Execute(failing)
	cb.Execute(passing)
	cb.Execute(failing)
	cb.Execute(failing)

	if err := cb.Execute(passing); errors.Is(err, ErrOpen) {
		t.Fatal("interleaved successes should keep the breaker closed")
	}
}

func TestHalfOpenRecovery(t *testing.T) {
	cb := New(testConfig())

	for i := 0; i < 3; i++ {
		cb.Execute(failing)
	}
	if err := cb.Execute(passing); !errors.Is(err, ErrOpen) {
		t.Fatalf("breaker should be open, got %v", err)
	}

	time.Sleep(60 * time.Millisecond)

	// 半开状态：成功两次后关闭
	if err := cb.Execute(passing); err != nil {
		t.Fatalf("half-open probe should run, got %v", err)
	}
	if err := cb.Execute(passing); err != nil {
		t.Fatalf("second probe should run, got %v", err)
	}
	if err := cb.Execute(passing); err != nil {
		t.Fatalf("breaker should be closed again, got %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Errorf("state = %v, want closed", cb.GetState())
	}
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := New(testConfig())

	for i := 0; i < 3; i++ {
		cb.Execute(failing)
	}
	cb.Execute(passing) // 触发状态切换到 open

	time.Sleep(60 * time.Millisecond)

	if err := cb.Execute(failing); !errors.Is(err, errBoom) {
		t.Fatalf("half-open probe should run, got %v", err)
	}
	if err := cb.Execute(passing); !errors.Is(err, ErrOpen) {
		t.Fatalf("failed probe should reopen the breaker, got %v", err)
	}
}
