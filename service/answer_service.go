package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/asknote/asknote-be/types"
	"go.uber.org/zap"
)

// Canned replies keep conversational filler off the generation endpoint.
const (
	greetingReply  = "Hey there! 👋 I'm doing awesome — just hanging out in the cloud ☁️ and ready to assist you. What can I help you with today? 😊"
	goodbyeReply   = "Bye for now! 👋 Catch you later, and feel free to come back anytime. 🌟"
	thanksReply    = "You're welcome! 😊 I'm here anytime if you need more info. 🔍"
	casualReply    = "Haha, I'm all good in the cloud! 😄 What are you looking to explore today? 💬"
	fallbackReply  = "Sorry, I didn't quite catch that. Can you rephrase or ask something else? 🤔"
	noContextReply = "Oops! Looks like there's no content to work with. 🤔 Please upload a document so I can help you out! 📄"
	apologyReply   = "⚠️ Oops! Something went wrong while processing your question. Try again later. 😕"
	emptyGenReply  = "Oops! Something went wrong. 😬 Try again!"
)

const tonePromptTemplate = `
Classify the tone of this user message strictly into one of the following categories:
- "greeting" (e.g., "hey", "how are you", "hello")
- "goodbye" (e.g., "bye", "see you later", "goodnight")
- "thanks" (e.g., "thanks", "thank you", "appreciate it")
- "casual" (e.g., "what's up?", "how's it going?")
- "topic" (asking about a subject, e.g., "What is blockchain?")

Only reply with one of these labels: greeting, goodbye, thanks, casual, topic

Message: "%s"
Answer:
`

const topicPromptTemplate = `
You're a modern, expert-level professor with a friendly vibe. You explain topics in a way that's easy to understand, while keeping things casual and fun! Your answers should:

- Use **headings** to organize key concepts and groups of information 📑
- Include numbered points **bullet points** for lists or groups of information ✔️
- Add less **emojis** to keep it engaging 🎉
- Be **descriptive** and easy to understand 🧠

Here's the context from the document:
%s

And the user's question:
%s

Answer:
`

// AnswerService classifies a question's intent and produces the reply.
// It never returns an error: every failure from the external calls is
// normalized to a displayable string, because the transcript has to show
// something for every turn.
type AnswerService struct {
	ai      AIService
	timeout time.Duration
	logger  *zap.SugaredLogger
}

func NewAnswerService(ai AIService, timeout time.Duration, logger *zap.SugaredLogger) *AnswerService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &AnswerService{
		ai:      ai,
		timeout: timeout,
		logger:  logger,
	}
}

// Answer produces the reply text for one question given the selected
// document context and the pages it was drawn from.
func (s *AnswerService) Answer(ctx context.Context, docContext string, pages []int, question string) string {
	if strings.TrimSpace(docContext) == "" {
		return noContextReply
	}

	intent, err := s.classify(ctx, question)
	if err != nil {
		s.logger.Warnw("intent classification failed", "error", err)
		return apologyReply
	}

	switch intent {
	case types.IntentGreeting:
		return greetingReply
	case types.IntentGoodbye:
		return goodbyeReply
	case types.IntentThanks:
		return thanksReply
	case types.IntentCasual:
		return casualReply
	case types.IntentTopic:
		return s.answerTopic(ctx, docContext, pages, question)
	default:
		return fallbackReply
	}
}

func (s *AnswerService) classify(ctx context.Context, question string) (types.Intent, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	label, err := s.ai.Complete(callCtx, fmt.Sprintf(tonePromptTemplate, question))
	if err != nil {
		return types.IntentUnknown, err
	}
	return types.ParseIntent(label), nil
}

func (s *AnswerService) answerTopic(ctx context.Context, docContext string, pages []int, question string) string {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer, err := s.ai.Complete(callCtx, fmt.Sprintf(topicPromptTemplate, docContext, question))
	if err != nil {
		s.logger.Warnw("answer generation failed", "error", err)
		return apologyReply
	}
	if answer == "" {
		answer = emptyGenReply
	}

	google, youtube := externalResources(question)

	var b strings.Builder
	b.WriteString("💡 **Answer for your question:**\n\n")
	b.WriteString(answer)
	if len(pages) > 0 {
		b.WriteString("\n\n📄 This info came from page")
		if len(pages) > 1 {
			b.WriteString("s")
		}
		b.WriteString(" ")
		b.WriteString(joinPages(pages))
		b.WriteString(".")
	}
	b.WriteString("\n\n🔍 **External resources**:\n")
	b.WriteString("- [Google Search](" + google + ")\n")
	b.WriteString("- [YouTube Videos](" + youtube + ")\n")
	b.WriteString("\n✨ Let me know if you'd like to dive deeper! 😊")
	return b.String()
}

// externalResources builds web and video search links from the raw
// question text.
func externalResources(topic string) (google, youtube string) {
	encoded := url.QueryEscape(topic)
	google = "https://www.google.com/search?q=" + encoded
	youtube = "https://www.youtube.com/results?search_query=" + encoded
	return google, youtube
}

func joinPages(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ", ")
}
