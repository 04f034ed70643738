package service

import (
	"context"
	"math"
	"strings"
	"time"

	"agribot/internal/conversation"
	"agribot/internal/metrics"
	"agribot/internal/model"

	"go.uber.org/zap"
)

// ChatService handles one message per call: extract, compose, log
type ChatService struct {
	sessions  *conversation.Registry
	extractor *EntityExtractor
	composer  *ResponseComposer
	weather   *WeatherService
	logger    *zap.Logger
	now       func() time.Time
}

// NewChatService creates a new chat service. weather may be nil.
func NewChatService(
	sessions *conversation.Registry,
	extractor *EntityExtractor,
	composer *ResponseComposer,
	weather *WeatherService,
	logger *zap.Logger,
) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		sessions:  sessions,
		extractor: extractor,
		composer:  composer,
		weather:   weather,
		logger:    logger,
		now:       time.Now,
	}
}

// HandleMessage answers text within a session and appends the turn to the
// session log. Blank text produces no turn and a nil response.
func (s *ChatService) HandleMessage(ctx context.Context, sessionID, text string) (*model.ChatResponse, error) {
	startTime := time.Now()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := s.sessions.Get(sessionID)
	extracted := s.extractor.Extract(ctx, text, conversation.Last(log))

	reply := s.composer.Compose(ctx, text)
	reply.Suggestions = s.composer.Suggest(text, extracted)

	var weather *model.WeatherReport
	if reply.Intent == model.IntentWeatherInquiry && extracted.City != nil && s.weather.IsEnabled() {
		weather = s.weather.Report(ctx, *extracted.City)
	}

	now := s.now()
	log.Append(model.Turn{
		UserText:   text,
		BotText:    reply.Text,
		Confidence: reply.Confidence,
		Source:     reply.Source,
		Timestamp:  now,
	})

	metrics.ObserveTurn(string(reply.Intent), reply.Source, reply.Confidence, startTime)
	s.logger.Debug("message answered",
		zap.String("session", sessionID),
		zap.String("intent", string(reply.Intent)),
		zap.String("source", reply.Source),
		zap.Float64("confidence", reply.Confidence),
		zap.Duration("took", time.Since(startTime)))

	return &model.ChatResponse{
		BotResponse:       reply.Text,
		Confidence:        reply.Confidence,
		ConfidencePercent: math.Round(reply.Confidence*1000) / 10,
		Source:            reply.Source,
		Intent:            reply.Intent,
		Context:           &extracted,
		Suggestions:       reply.Suggestions,
		Weather:           weather,
		Timestamp:         now.Format("15:04"),
	}, nil
}

// Reset clears the log of a session
func (s *ChatService) Reset(sessionID string) {
	if log, ok := s.sessions.Peek(sessionID); ok {
		log.Clear()
	}
}

// History returns the turns of a session in order
func (s *ChatService) History(sessionID string) *model.HistoryResponse {
	turns := []model.Turn{}
	if log, ok := s.sessions.Peek(sessionID); ok {
		turns = log.All()
	}
	return &model.HistoryResponse{Turns: turns, Total: len(turns)}
}

// Stats returns the derived views of a session log
func (s *ChatService) Stats(sessionID string) *model.StatsResponse {
	turns := []model.Turn{}
	if log, ok := s.sessions.Peek(sessionID); ok {
		turns = log.All()
	}
	return &model.StatsResponse{
		Turns:             len(turns),
		AverageConfidence: conversation.AverageConfidence(turns),
		SourceCounts:      conversation.SourceCounts(turns),
	}
}
