package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/luckyace-next/internal/config"
)

func TestCaptchaDisabledSkipsVerify(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Enabled: false})

	if svc.Enabled() {
		t.Fatal("captcha should be disabled")
	}
	if err := svc.Verify(CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled captcha must pass through, got %v", err)
	}
}

func TestCaptchaVerifyRequiresPayload(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Enabled: true, Length: 4, Width: 120, Height: 40})

	if err := svc.Verify(CaptchaVerifyPayload{}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("expected ErrCaptchaRequired, got %v", err)
	}
	if err := svc.Verify(CaptchaVerifyPayload{CaptchaID: "abc"}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("expected ErrCaptchaRequired without code, got %v", err)
	}
}

func TestCaptchaVerifyWrongCode(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Enabled: true, Length: 4, Width: 120, Height: 40})

	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate challenge failed: %v", err)
	}
	if challenge.CaptchaID == "" {
		t.Fatal("expected captcha id")
	}
	if !strings.HasPrefix(challenge.ImageBase64, "data:image/") {
		t.Fatalf("expected base64 image payload, got %q", challenge.ImageBase64[:min(len(challenge.ImageBase64), 32)])
	}

	err = svc.Verify(CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: "definitely-wrong"})
	if !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("expected ErrCaptchaInvalid, got %v", err)
	}
}
