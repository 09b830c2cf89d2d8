package telegram

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	app "simple-ocr-server/internal/application"
	ocrerrors "simple-ocr-server/internal/errors"
	"simple-ocr-server/internal/logging"
)

const (
	msgStart = `👋 Привет! Я распознаю текст на изображениях.

📸 Отправьте фото или картинку файлом, и я пришлю найденный текст.

📋 Команды:
/help — справка`

	msgHelp = `ℹ️ Как пользоваться ботом:

1️⃣ Отправьте фото (или изображение файлом, чтобы не терять качество)
2️⃣ Бот распознает текст
3️⃣ Вы получите найденные строки

💡 Рекомендации:
• Снимайте при хорошем освещении
• Держите текст ровно
• Фото должно быть чётким`

	msgSendPhoto       = "📸 Пожалуйста, отправьте фото с текстом."
	msgUnknownCommand  = "❓ Неизвестная команда. Используйте /help для справки."
	msgNoText          = "🔍 Текст не найден."
	msgNotImage        = "⚠️ Не удалось прочитать изображение. Попробуйте другой файл."
	msgProcessingError = "⚠️ Не удалось распознать текст. Попробуйте позже."

	// maxMessageLen ограничение Telegram на длину сообщения
	maxMessageLen = 4096
	maxFileBytes  = 20 << 20

	// maxConcurrentUpdates число сообщений, обрабатываемых одновременно
	maxConcurrentUpdates = 8
)

// Bot представляет Telegram-бота
type Bot struct {
	api    *tgbotapi.BotAPI
	ocr    *app.OCRService
	logger *logging.Logger
	client *http.Client

	handle func(ctx context.Context, msg *tgbotapi.Message)
	sem    chan struct{}
	wg     sync.WaitGroup
}

// NewBot создаёт нового бота
func NewBot(token string, ocr *app.OCRService, logger *logging.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.NewLogger("telegram")
	}

	logger.Info("authorized", "account", api.Self.UserName)

	b := &Bot{
		api:    api,
		ocr:    ocr,
		logger: logger,
		client: &http.Client{},
		sem:    make(chan struct{}, maxConcurrentUpdates),
	}
	b.handle = b.handleMessage
	return b, nil
}

// Run запускает основной цикл обработки сообщений до отмены контекста
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.wg.Wait()
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil {
				continue
			}
			if !b.dispatch(ctx, update.Message) {
				return nil
			}
		}
	}
}

// dispatch передаёт сообщение обработчику в отдельной горутине.
// Блокируется, пока заняты все maxConcurrentUpdates слотов; false, если контекст отменён раньше.
func (b *Bot) dispatch(ctx context.Context, msg *tgbotapi.Message) bool {
	select {
	case b.sem <- struct{}{}:
	case <-ctx.Done():
		return false
	}

	b.wg.Add(1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				b.logger.Error("message handler panicked", "message_id", msg.MessageID, "panic", p)
			}
			<-b.sem
			b.wg.Done()
		}()
		b.handle(ctx, msg)
	}()
	return true
}

// handleMessage обрабатывает входящее сообщение
func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(msg)
		return
	}

	if fileID, ok := imageFileID(msg); ok {
		b.handleImage(ctx, msg, fileID)
		return
	}

	b.sendMessage(msg.Chat.ID, msgSendPhoto)
}

// handleCommand обрабатывает команды бота
func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		b.sendMessage(msg.Chat.ID, msgStart)
	case "help":
		b.sendMessage(msg.Chat.ID, msgHelp)
	default:
		b.sendMessage(msg.Chat.ID, msgUnknownCommand)
	}
}

// handleImage распознаёт текст и отвечает найденными строками
func (b *Bot) handleImage(ctx context.Context, msg *tgbotapi.Message, fileID string) {
	logger := b.logger.With("chat_id", msg.Chat.ID, "message_id", msg.MessageID)

	imageData, err := b.downloadFile(ctx, fileID)
	if err != nil {
		logger.Error("download failed", "error", err)
		b.sendMessage(msg.Chat.ID, msgProcessingError)
		return
	}

	out, err := b.ocr.Recognize(ctx, imageData, logger)
	if err != nil {
		b.sendMessage(msg.Chat.ID, errorReply(err))
		return
	}

	b.sendMessage(msg.Chat.ID, formatReply(out))
}

// imageFileID выбирает фото максимального размера или документ-изображение
func imageFileID(msg *tgbotapi.Message) (string, bool) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, true
	}
	if msg.Document != nil && strings.HasPrefix(msg.Document.MimeType, "image/") {
		return msg.Document.FileID, true
	}
	return "", false
}

// formatReply собирает распознанные строки в одно сообщение
func formatReply(out *app.OCROutput) string {
	var b strings.Builder
	for _, o := range out.Result {
		label := strings.TrimSpace(o.Text)
		if label == "" {
			continue
		}
		if b.Len()+len(label)+1 > maxMessageLen {
			break
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(label)
	}
	if b.Len() == 0 {
		return msgNoText
	}
	return b.String()
}

func errorReply(err error) string {
	if ocrerrors.IsCode(err, ocrerrors.ErrorDecodeFailed) {
		return msgNotImage
	}
	return msgProcessingError
}

// downloadFile скачивает файл из Telegram
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := b.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", redactURL(err, b.api.Token))
	}

	return b.fetch(ctx, file.Link(b.api.Token))
}

// fetch читает файл по ссылке; ссылка содержит токен и в ошибки не попадает
func (b *Bot) fetch(ctx context.Context, link string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", redactURL(err, b.api.Token))
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", redactURL(err, b.api.Token))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFileBytes))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return data, nil
}

// redactURL убирает из ошибки URL запроса, в пути которого лежит токен бота
func redactURL(err error, token string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
	}
	if token != "" && strings.Contains(err.Error(), token) {
		return errors.New(strings.ReplaceAll(err.Error(), token, "<redacted>"))
	}
	return err
}

// sendMessage отправляет текстовое сообщение
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("send message failed", "chat_id", chatID, "error", redactURL(err, b.api.Token))
	}
}
