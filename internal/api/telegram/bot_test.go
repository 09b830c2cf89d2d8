package telegram

import (
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/require"

	app "simple-ocr-server/internal/application"
	"simple-ocr-server/internal/domain/entity"
	ocrerrors "simple-ocr-server/internal/errors"
)

func TestFormatReply(t *testing.T) {
	out := &app.OCROutput{Result: entity.OcrResult{
		{Text: "Итого"},
		{Text: "  "},
		{Text: "1 250,00"},
	}}

	require.Equal(t, "Итого\n1 250,00", formatReply(out))
}

func TestFormatReply_NoText(t *testing.T) {
	require.Equal(t, msgNoText, formatReply(&app.OCROutput{}))
	require.Equal(t, msgNoText, formatReply(&app.OCROutput{Result: entity.OcrResult{{Text: ""}}}))
}

func TestFormatReply_RespectsMessageLimit(t *testing.T) {
	line := strings.Repeat("a", 1000)
	out := &app.OCROutput{}
	for i := 0; i < 10; i++ {
		out.Result = append(out.Result, entity.TextObservation{Text: line})
	}

	reply := formatReply(out)
	require.LessOrEqual(t, len(reply), maxMessageLen)
	require.Equal(t, 4, strings.Count(reply, "\n")+1)
}

func TestErrorReply(t *testing.T) {
	require.Equal(t, msgNotImage, errorReply(ocrerrors.NewDecodeError(errors.New("bad"))))
	require.Equal(t, msgProcessingError, errorReply(ocrerrors.NewRecognitionError(ocrerrors.ReasonEngineError, errors.New("x"))))
}

func TestImageFileID(t *testing.T) {
	msg := &tgbotapi.Message{Photo: []tgbotapi.PhotoSize{{FileID: "small"}, {FileID: "large"}}}
	id, ok := imageFileID(msg)
	require.True(t, ok)
	require.Equal(t, "large", id)

	msg = &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "doc", MimeType: "image/png"}}
	id, ok = imageFileID(msg)
	require.True(t, ok)
	require.Equal(t, "doc", id)

	msg = &tgbotapi.Message{Document: &tgbotapi.Document{FileID: "pdf", MimeType: "application/pdf"}}
	_, ok = imageFileID(msg)
	require.False(t, ok)

	_, ok = imageFileID(&tgbotapi.Message{Text: "hi"})
	require.False(t, ok)
}
