package utils

import (
	"testing"
	"time"
)

func TestRateLimiterAllowsWithinLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("client") {
			t.Fatalf("запрос %d должен быть разрешен", i+1)
		}
	}

	if rl.Allow("client") {
		t.Error("запрос сверх лимита должен быть отклонен")
	}
}

func TestRateLimiterSeparateKeys(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if !rl.Allow("первый") {
		t.Error("первый клиент должен пройти")
	}
	if !rl.Allow("второй") {
		t.Error("лимит одного клиента не должен влиять на другого")
	}
}

func TestRateLimiterWindowExpiry(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	if !rl.Allow("client") {
		t.Fatal("первый запрос должен пройти")
	}
	if rl.Allow("client") {
		t.Fatal("второй запрос в окне должен быть отклонен")
	}

	time.Sleep(15 * time.Millisecond)

	if !rl.Allow("client") {
		t.Error("после истечения окна запрос должен пройти")
	}
}

func TestRateLimiterGetRemaining(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)

	rl.Allow("client")
	rl.Allow("client")

	if got := rl.GetRemaining("client"); got != 3 {
		t.Errorf("остаток = %d, ожидалось 3", got)
	}
}

func TestRateLimiterReset(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	rl.Allow("client")
	rl.Reset("client")

	if !rl.Allow("client") {
		t.Error("после сброса запрос должен пройти")
	}
}
