package main

import (
	"os"

	"github.com/orfon/fbmessenger/pkg/log"
	"github.com/orfon/fbmessenger/pkg/messenger"
)

// Queues several operations on a batch-mode client and ships them in one
// HTTP call.
func main() {
	client := messenger.NewBatch(os.Getenv("PAGE_ACCESS_TOKEN"), messenger.Options{})
	recipient := os.Getenv("RECIPIENT_ID")

	for _, text := range []string{"one", "two", "three"} {
		if _, err := client.SendTextMessage(recipient, text); err != nil {
			log.Fatalf("queueing failed: %v", err)
		}
	}
	if _, err := client.SetGetStarted("GET_STARTED"); err != nil {
		log.Fatalf("queueing failed: %v", err)
	}
	log.Infof("queued %d operations", client.Pending())

	responses, err := client.Flush()
	if err != nil {
		log.Fatalf("flush failed: %v", err)
	}
	for _, sub := range responses {
		decoded, err := sub.Decoded()
		if err != nil {
			log.Errorw("sub-request failed", "error", err)
			continue
		}
		log.Infow("sub-request ok", "response", decoded)
	}
}
