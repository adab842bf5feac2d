package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/flemzord/chacha/internal/admission"
	"github.com/flemzord/chacha/internal/chat"
)

// User-facing messages. Wording is part of the API contract.
const (
	msgMissingQuestion = "Missing or invalid question"
	msgForbiddenInput  = "Invalid input detected. Please rephrase your question."
	msgTooShort        = "What can I help you with today?"
	msgQuotaExhausted  = "Token quota exhausted. Please wait for quota to reset or contact support to increase your limit."
	msgLLMError        = "LLM error"
)

// ChatRequest is the JSON body of POST /api/chat.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the JSON response for a successful chat turn.
type ChatResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Error           string `json:"error"`
	Remaining       *int   `json:"remaining,omitempty"`
	RemainingTokens *int   `json:"remainingTokens,omitempty"`
	ResetTime       string `json:"resetTime,omitempty"`
}

// handleChat returns an http.HandlerFunc for POST /api/chat.
func (g *Gateway) handleChat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, errorResponse{Error: msgMissingQuestion})
			return
		}

		resp, err := g.pipeline.Ask(r.Context(), chat.Request{
			UserID:   userIDFrom(r.Context()),
			ClientIP: clientIPFrom(r.Context()),
			Question: body.Question,
		})

		if resp.Rate.Limit > 0 {
			setRateHeaders(w, resp.Rate)
		}

		if err != nil {
			g.writeChatError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ChatResponse{Answer: resp.Answer})
	}
}

// writeChatError maps pipeline errors onto the HTTP contract.
func (g *Gateway) writeChatError(w http.ResponseWriter, err error) {
	var (
		rateErr  *chat.RateLimitedError
		quotaErr *chat.QuotaExhaustedError
		genErr   *chat.GenerationError
	)

	switch {
	case errors.As(err, &rateErr):
		retryIn := int(time.Until(rateErr.Info.ResetAt).Round(time.Second).Seconds())
		if retryIn < 1 {
			retryIn = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryIn))
		remaining := rateErr.Info.Remaining
		writeError(w, http.StatusTooManyRequests, errorResponse{
			Error:     fmt.Sprintf("Rate limit exceeded. Try again in %d seconds.", retryIn),
			Remaining: &remaining,
			ResetTime: rateErr.Info.ResetAt.UTC().Format(time.RFC3339),
		})

	case errors.As(err, &quotaErr):
		remaining := quotaErr.Info.Remaining
		writeError(w, http.StatusPaymentRequired, errorResponse{
			Error:           msgQuotaExhausted,
			RemainingTokens: &remaining,
			ResetTime:       quotaErr.Info.ResetAt.UTC().Format(time.RFC3339),
		})

	case errors.Is(err, chat.ErrQuestionMissing):
		writeError(w, http.StatusBadRequest, errorResponse{Error: msgMissingQuestion})

	case errors.Is(err, chat.ErrForbiddenInput):
		writeError(w, http.StatusBadRequest, errorResponse{Error: msgForbiddenInput})

	case errors.Is(err, chat.ErrQuestionTooShort):
		writeError(w, http.StatusBadRequest, errorResponse{Error: msgTooShort})

	case errors.As(err, &genErr):
		msg := msgLLMError
		if g.config.Debug {
			msg = fmt.Sprintf("%s: %v", msgLLMError, genErr.Err)
		}
		writeError(w, http.StatusInternalServerError, errorResponse{Error: msg})

	default:
		g.logger.Error("chat handler failed", "error", err)
		msg := "Internal server error"
		if g.config.Debug {
			msg = err.Error()
		}
		writeError(w, http.StatusInternalServerError, errorResponse{Error: msg})
	}
}

func setRateHeaders(w http.ResponseWriter, res admission.Result) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
}

func writeError(w http.ResponseWriter, code int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
