package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/pkg/apperror"
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/llm"

	"github.com/google/uuid"
)

const (
	// maxHistoryMessages bounds the prior turns sent to the model.
	maxHistoryMessages = 20
	maxImageSize       = 5 * 1024 * 1024
	ImagePathPrefix    = "/uploads/images/"
)

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

type ITutorService interface {
	Ask(ctx context.Context, user *entity.User, req *dto.AskRequest) (*dto.AskResponse, error)
	UploadImage(ctx context.Context, user *entity.User, file *multipart.FileHeader) (*dto.UploadImageResponse, error)
}

type tutorService struct {
	chatService IChatService
	llmProvider llm.LLMProvider
	timeout     time.Duration
	uploadDir   string
	logger      logger.ILogger
}

func NewTutorService(chatService IChatService, llmProvider llm.LLMProvider, timeout time.Duration, uploadDir string, logger logger.ILogger) ITutorService {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &tutorService{
		chatService: chatService,
		llmProvider: llmProvider,
		timeout:     timeout,
		uploadDir:   uploadDir,
		logger:      logger,
	}
}

func replyLanguage(requested string, user *entity.User) string {
	lang := requested
	if lang == "" {
		lang = user.Preferences.Language
	}
	if lang != entity.LanguageBangla {
		lang = entity.LanguageEnglish
	}
	return lang
}

func systemPrompt(lang string) string {
	name := "English"
	if lang == entity.LanguageBangla {
		name = "Bengali (বাংলা)"
	}
	return fmt.Sprintf("You are a patient tutor for students. Explain step by step and keep answers short. Reply in %s.", name)
}

func fallbackReply(lang string) string {
	if lang == entity.LanguageBangla {
		return "দুঃখিত, এই মুহূর্তে উত্তর দিতে পারছি না। একটু পরে আবার চেষ্টা করুন।"
	}
	return "Sorry, I can't answer right now. Please try again in a moment."
}

func userTurn(message string, imageURL *string) string {
	if imageURL == nil || *imageURL == "" {
		return message
	}
	return fmt.Sprintf("%s\n\n[attached image: %s]", message, *imageURL)
}

// Ask runs one tutor turn. With a chat id the question and the reply are
// appended to that chat; without one nothing is stored.
func (ts *tutorService) Ask(ctx context.Context, user *entity.User, req *dto.AskRequest) (*dto.AskResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, apperror.Validation("message is required", map[string]string{"message": "required"})
	}
	if req.Language != "" && req.Language != entity.LanguageEnglish && req.Language != entity.LanguageBangla {
		return nil, apperror.Validation("unsupported language", map[string]string{"language": "oneof"})
	}
	lang := replyLanguage(req.Language, user)

	history := []llm.Message{{Role: llm.RoleSystem, Content: systemPrompt(lang)}}

	if req.ChatId != nil {
		chat, err := ts.chatService.GetChat(ctx, user, *req.ChatId)
		if err != nil {
			return nil, err
		}
		prior := chat.Messages
		if len(prior) > maxHistoryMessages {
			prior = prior[len(prior)-maxHistoryMessages:]
		}
		for _, m := range prior {
			if m.Role == string(entity.MessageRoleSystem) {
				continue
			}
			history = append(history, llm.Message{Role: m.Role, Content: userTurn(m.Content, m.ImageURL)})
		}
	}
	history = append(history, llm.Message{Role: llm.RoleUser, Content: userTurn(req.Message, req.ImageURL)})

	res := &dto.AskResponse{Language: lang}

	llmCtx, cancel := context.WithTimeout(ctx, ts.timeout)
	reply, err := ts.llmProvider.Chat(llmCtx, history)
	cancel()
	if err == nil && strings.TrimSpace(reply) == "" {
		err = errors.New("empty reply")
	}
	if err != nil {
		ts.logger.Warn("TUTOR", "LLM call failed, using fallback reply", map[string]interface{}{
			"provider": ts.llmProvider.Name(),
			"user_id":  user.Id,
			"error":    err.Error(),
		})
		reply = fallbackReply(lang)
		res.Fallback = true
	}
	res.Reply = reply

	if req.ChatId == nil {
		return res, nil
	}

	userMsg, assistantMsg, err := ts.chatService.AppendExchange(ctx, user, *req.ChatId,
		&dto.AppendMessageRequest{
			Role:     string(entity.MessageRoleUser),
			Content:  req.Message,
			ImageURL: req.ImageURL,
		},
		&dto.AppendMessageRequest{
			Role:    string(entity.MessageRoleAssistant),
			Content: reply,
		},
	)
	if err != nil {
		return nil, err
	}

	res.UserMessage = userMsg
	res.AssistantMessage = assistantMsg
	return res, nil
}

// UploadImage stores an image under uploadDir/images and returns its public path.
func (ts *tutorService) UploadImage(ctx context.Context, user *entity.User, file *multipart.FileHeader) (*dto.UploadImageResponse, error) {
	if file == nil {
		return nil, apperror.Validation("image is required", map[string]string{"image": "required"})
	}
	if file.Size > maxImageSize {
		return nil, apperror.Validation("image too large (max 5MB)", map[string]string{"image": "max"})
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return nil, apperror.Validation("unsupported image type", map[string]string{"image": "image"})
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperror.Internal("failed to open upload", err)
	}
	defer src.Close()

	dir := filepath.Join(ts.uploadDir, "images")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperror.Internal("failed to create upload directory", err)
	}

	filename := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, filename))
	if err != nil {
		return nil, apperror.Internal("failed to create file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, apperror.Internal("failed to save image", err)
	}

	ts.logger.Info("TUTOR", "Image uploaded", map[string]interface{}{"user_id": user.Id, "file": filename})
	return &dto.UploadImageResponse{ImageURL: ImagePathPrefix + filename}, nil
}
