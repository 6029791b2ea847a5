package server

import (
	"testing"
	"time"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-123", messageChan)

	logger.Printf("%s\n", "Test log message")

	select {
	case msg := <-messageChan:
		if msg.Message != "Test log message\n" {
			t.Errorf("Expected message 'Test log message\\n', got '%s'", msg.Message)
		}
		if msg.RenderID != "test-render-123" {
			t.Errorf("Expected render ID 'test-render-123', got '%s'", msg.RenderID)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("Timeout waiting for console message")
	}
}

func TestWebLogger_PreservesOrder(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-456", messageChan)

	messages := []string{"Message 1", "Message 2", "Message 3"}
	for _, msg := range messages {
		logger.Printf("%s\n", msg)
	}

	for i, expected := range messages {
		select {
		case msg := <-messageChan:
			if msg.Message != expected+"\n" {
				t.Errorf("Message %d: expected '%s', got '%s'", i, expected, msg.Message)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("Timeout waiting for message %d", i+1)
		}
	}
}

func TestWebLogger_ChannelFull(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-789", messageChan)

	// Must not block once the channel is full
	logger.Printf("Message 1\n")
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	msg := <-messageChan
	if msg.Message != "Message 1\n" {
		t.Errorf("Expected first message to be kept, got '%s'", msg.Message)
	}
	select {
	case extra := <-messageChan:
		t.Errorf("Expected later messages to be dropped, got '%s'", extra.Message)
	default:
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("test-render-nil", nil)

	// Should not panic
	logger.Printf("Test message with nil channel\n")
}
