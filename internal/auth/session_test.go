package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
)

func TestSessionStoreCreateAndGet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := SessionStore{Client: client, TTL: DefaultSessionTTL}

	mock.Regexp().ExpectSet(`session:.+`, "signed-token", DefaultSessionTTL).SetVal("OK")

	sid, err := store.Create(context.Background(), "signed-token")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if sid == "" {
		t.Fatalf("Create returned empty session id")
	}

	mock.ExpectGet("session:" + sid).SetVal("signed-token")
	token, err := store.Get(context.Background(), sid)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if token != "signed-token" {
		t.Fatalf("Get returned %q", token)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSessionStoreGetMissing(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := SessionStore{Client: client}

	mock.ExpectGet("session:gone").RedisNil()

	_, err := store.Get(context.Background(), "gone")
	if !errors.Is(err, redis.Nil) {
		t.Fatalf("expected redis.Nil for missing session, got %v", err)
	}
}

func TestSessionStoreDestroy(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := SessionStore{Client: client}

	mock.ExpectDel("session:sid-1").SetVal(1)
	if err := store.Destroy(context.Background(), "sid-1"); err != nil {
		t.Fatalf("Destroy error: %v", err)
	}

	// destroying twice must stay silent
	mock.ExpectDel("session:sid-1").SetVal(0)
	if err := store.Destroy(context.Background(), "sid-1"); err != nil {
		t.Fatalf("Destroy of missing session error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
