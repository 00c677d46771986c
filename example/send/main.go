package main

import (
	"os"

	"github.com/orfon/fbmessenger/pkg/graph"
	"github.com/orfon/fbmessenger/pkg/log"
	"github.com/orfon/fbmessenger/pkg/messenger"
)

// Sends a text message, an image by URL and a button template to RECIPIENT_ID.
func main() {
	client := messenger.New(os.Getenv("PAGE_ACCESS_TOKEN"), messenger.Options{})
	recipient := os.Getenv("RECIPIENT_ID")

	resp, err := client.SendTextMessage(recipient, "Hello from the example bot")
	if err != nil {
		log.Fatalf("text message failed: %v", err)
	}
	log.Infow("text message sent", "response", resp)

	_, err = client.SendAttachment(recipient, messenger.AttachmentImage, "https://picsum.photos/600/400")
	if err != nil {
		log.Fatalf("attachment failed: %v", err)
	}

	_, err = client.SendButtonTemplate(recipient, "Pick one", []messenger.Button{
		messenger.PostbackButton("Say hi", "SAY_HI"),
		messenger.URLButton("Open docs", "https://developers.facebook.com/docs/messenger-platform"),
	})
	if err != nil {
		log.Fatalf("button template failed: %v", err)
	}

	// Upload a local file when one is provided.
	if path := os.Getenv("UPLOAD_PATH"); path != "" {
		upload := graph.NewFileUploadFromPath(path)
		if _, err := client.SendFileAttachment(recipient, messenger.AttachmentFile, upload); err != nil {
			log.Fatalf("file upload failed: %v", err)
		}
	}
}
