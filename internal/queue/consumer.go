package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StartActivityConsumer connects to RabbitMQ, declares the media.activity
// queue (durable), and starts consuming messages. Each message is appended
// to logs/activity.log in a single-line, human-friendly format. The
// function runs a reconnect loop; it keeps running and logs any processing
// errors while rejecting the offending message so the server continues
// operating.
func StartActivityConsumer() error {
	url := brokerURL()

	backoff := time.Second
	for {
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("activity-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(conn); err != nil {
			log.Printf("activity-consumer: consume loop ended: %v; reconnecting", err)
			time.Sleep(2 * time.Second)
			continue
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("activity-consumer: set QoS failed: %v", err)
	}

	_, err = ch.QueueDeclare(ActivityQueueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(ActivityQueueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := handleMessage(d.Body); err != nil {
			log.Printf("activity-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

func handleMessage(body []byte) error {
	var ev ActivityEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	return appendActivityLine(formatActivity(ev))
}

func formatActivity(ev ActivityEvent) string {
	ts := ev.OccurredAt
	if ts == "" {
		ts = time.Now().UTC().Format(time.RFC3339)
	}
	switch ev.Kind {
	case KindWishlistToggled:
		verb := "removed from"
		if ev.Added {
			verb = "added to"
		}
		return fmt.Sprintf("%s %s(#%d) %s wishlist: %s #%d",
			ts, ev.Username, ev.UserID, verb, ev.MediaType, ev.MediaID)
	case KindReviewSubmitted:
		return fmt.Sprintf("%s %s(#%d) reviewed %s #%d with rating %d",
			ts, ev.Username, ev.UserID, ev.MediaType, ev.MediaID, ev.Rating)
	default:
		return fmt.Sprintf("%s unknown activity %q from %s(#%d)",
			ts, ev.Kind, ev.Username, ev.UserID)
	}
}

func appendActivityLine(line string) error {
	dir := "logs"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "activity.log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write log line: %w", err)
	}
	return nil
}
