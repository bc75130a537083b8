package server

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/mrsingh-rishi/transcript-sheet/output"
	"github.com/mrsingh-rishi/transcript-sheet/types"
)

//go:generate mockgen -source=server.go -destination=mocks_test.go -package=server

const (
	msgWrongPassword = "Неправильный пароль"
	msgMissingLink   = "Не указана ссылка на файл"
	msgFailed        = "Не удалось распознать запись"
	msgTimeout       = "Распознавание не завершилось вовремя, попробуйте позже"
	msgInternal      = "Внутренняя ошибка"
)

type Transcriber interface {
	Run(ctx context.Context, link string) (types.Table, error)
}

type PasswordChecker interface {
	Verify(password string) bool
}

type Options struct {
	Transcriber Transcriber
	Checker     PasswordChecker
	RunTimeout  time.Duration
	Logger      *logrus.Entry
	// Now is used for artifact names; defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	app         *fiber.App
	transcriber Transcriber
	checker     PasswordChecker
	runTimeout  time.Duration
	now         func() time.Time
	log         *logrus.Entry
}

// New initializes the fiber app and registers the routes.
func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.Out = io.Discard
		log = logrus.NewEntry(l)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	timeout := opts.RunTimeout
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}

	s := &Server{
		transcriber: opts.Transcriber,
		checker:     opts.Checker,
		runTimeout:  timeout,
		now:         now,
		log:         log.WithField("module", "server"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "transcript-sheet",
		BodyLimit:             1 << 20,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(s.accessLog)

	app.Get("/", s.form)
	app.Post("/", s.submit)
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	s.app = app
	return s
}

func (s *Server) App() *fiber.App { return s.app }

func (s *Server) Listen(addr string) error {
	s.log.WithField("addr", addr).Info("listening")
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

func (s *Server) accessLog(c *fiber.Ctx) error {
	started := time.Now()
	err := c.Next()
	s.log.WithFields(logrus.Fields{
		"method":  c.Method(),
		"path":    c.Path(),
		"status":  c.Response().StatusCode(),
		"elapsed": time.Since(started).String(),
	}).Info("request")
	return err
}

func (s *Server) form(c *fiber.Ctx) error {
	c.Type("html", "utf-8")
	return c.SendString(formHTML)
}

// submit checks the password, runs the transcription and returns the workbook.
func (s *Server) submit(c *fiber.Ctx) error {
	if !s.checker.Verify(c.FormValue("password")) {
		s.log.WithField("ip", c.IP()).Warn("wrong password")
		return c.Status(fiber.StatusForbidden).SendString(msgWrongPassword)
	}
	link := strings.TrimSpace(c.FormValue("text"))
	if link == "" {
		return c.Status(fiber.StatusBadRequest).SendString(msgMissingLink)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.runTimeout)
	defer cancel()

	table, err := s.transcriber.Run(ctx, link)
	if err != nil {
		if types.KindOf(err) == types.ErrTimeout {
			return c.Status(fiber.StatusGatewayTimeout).SendString(msgTimeout)
		}
		return c.Status(fiber.StatusBadGateway).SendString(msgFailed)
	}

	data, err := output.WriteXLSX(table)
	if err != nil {
		s.log.WithError(err).Error("write workbook")
		return c.Status(fiber.StatusInternalServerError).SendString(msgInternal)
	}
	filename := output.Filename(s.now())
	s.log.WithFields(logrus.Fields{"file": filename, "rows": len(table)}).Info("result sent")

	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, output.MIMEType)
	return c.Send(data)
}

const formHTML = `<!DOCTYPE html>
<html lang="ru">
<head><meta charset="utf-8"><title>Распознавание аудио</title></head>
<body>
<form method="post" action="/">
  <p><label>Пароль <input type="password" name="password" required></label></p>
  <p><label>Публичная ссылка на файл <input type="text" name="text" size="80" required></label></p>
  <p><button type="submit">Распознать</button></p>
</form>
</body>
</html>
`
