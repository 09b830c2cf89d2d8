package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"
)

// Listen открывает unix-сокет, если задан путь, иначе TCP-порт.
// Оставшийся от прошлого запуска файл сокета удаляется.
func Listen(port int, socketPath string) (net.Listener, error) {
	if socketPath != "" {
		if err := os.Remove(socketPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("remove stale socket %s: %w", socketPath, err)
		}
		ln, err := net.Listen("unix", socketPath)
		if err != nil {
			return nil, fmt.Errorf("listen on unix socket %s: %w", socketPath, err)
		}
		return ln, nil
	}

	addr := net.JoinHostPort("", strconv.Itoa(port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	return ln, nil
}

// Server HTTP-сервер поверх готового слушателя
type Server struct {
	srv *http.Server
	ln  net.Listener
}

// NewServer создаёт сервер с маршрутами обработчика
func NewServer(ln net.Listener, h *Handler) *Server {
	return &Server{
		ln: ln,
		srv: &http.Server{
			Handler:           NewRouter(h),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Addr адрес слушателя
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

// Serve блокируется до остановки сервера; после Shutdown возвращает nil
func (s *Server) Serve() error {
	if err := s.srv.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown дожидается завершения активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
