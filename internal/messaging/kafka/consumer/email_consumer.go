package consumer

import (
	"context"
	"encoding/json"

	"github.com/mathewsajan/truplace/internal/email"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmailRequests reads queued email requests and hands them to
// the Sender. A permanently malformed message is committed and skipped.
// A transport failure is not committed here, which retries it only until
// a later message commits; a send that keeps failing is dropped once a
// subsequent one succeeds. Email is fire-and-forget, so that is fine.
func ConsumeEmailRequests(
	ctx context.Context,
	reader *kafkago.Reader,
	sender email.Sender,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.email")
	log.Info("email consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("email consumer stopped")
				return
			}
			log.Error("fetch email message failed", zap.Error(err))
			continue
		}

		var req email.EmailRequest
		if err := json.Unmarshal(msg.Value, &req); err != nil {
			log.Error("decode email request failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		result := sender.Send(ctx, req)
		if !result.Success {
			log.Error("send email failed",
				zap.String("email_type", req.EmailType),
				zap.String("company_name", req.CompanyName),
				zap.String("error", result.Error),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit email message failed", zap.Error(err))
			continue
		}

		log.Info("email delivered",
			zap.String("email_type", req.EmailType),
			zap.String("company_name", req.CompanyName),
		)
	}
}
