package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"activity-signup/internal/model"
	"activity-signup/internal/web"
)

// DefaultHideAfter — через сколько статусное сообщение скрывается.
const DefaultHideAfter = 5 * time.Second

const (
	msgSignupFallback       = "An error occurred"
	msgSignupFailed         = "Failed to sign up. Please try again."
	msgUnregisterFallback   = "Failed to unregister participant"
	msgUnregisterFailed     = "Failed to unregister participant. Please try again."
	classSuccess            = "success"
	classError              = "error"
	classHidden             = "hidden"
	classRemovalControl     = "delete-participant"
	attrActivity            = "data-activity"
	attrEmail               = "data-email"
	elementIDActivitiesList = "activities-list"
	elementIDActivitySelect = "activity"
	elementIDEmailInput     = "email"
	elementIDSignupForm     = "signup-form"
	elementIDMessage        = "message"
)

// API — операции сервера, которые нужны контроллеру.
type API interface {
	Activities(ctx context.Context) (model.Directory, error)
	Signup(ctx context.Context, activity, email string) (string, error)
	Unregister(ctx context.Context, activity, email string) (string, error)
}

// ActivityClient — контроллер страницы. Держит документ и ссылки на его ключевые
// элементы, полученные один раз при создании. Безопасен для конкурентного использования:
// сетевые вызовы идут без блокировки, результаты применяются к документу в порядке прихода.
type ActivityClient struct {
	api       API
	log       *slog.Logger
	hideAfter time.Duration
	pageSrc   []byte

	mu        sync.Mutex
	doc       *html.Node
	list      *html.Node
	selectEl  *html.Node
	emailEl   *html.Node
	form      *html.Node
	message   *html.Node
	hideTimer *time.Timer
	hideGen   uint64
}

// Option настраивает ActivityClient.
type Option func(*ActivityClient)

// WithHideAfter задаёт задержку скрытия статусного сообщения.
func WithHideAfter(d time.Duration) Option {
	return func(c *ActivityClient) {
		c.hideAfter = d
	}
}

// WithLogger задаёт логгер для ошибок действий пользователя.
func WithLogger(log *slog.Logger) Option {
	return func(c *ActivityClient) {
		c.log = log
	}
}

// WithPage подменяет встроенную оболочку страницы.
func WithPage(src []byte) Option {
	return func(c *ActivityClient) {
		c.pageSrc = src
	}
}

// New разбирает оболочку страницы и находит в ней список, форму, поля и область сообщений.
func New(api API, opts ...Option) (*ActivityClient, error) {
	c := &ActivityClient{
		api:       api,
		log:       slog.New(slog.NewJSONHandler(io.Discard, nil)),
		hideAfter: DefaultHideAfter,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.pageSrc == nil {
		src, err := web.Index()
		if err != nil {
			return nil, fmt.Errorf("read page: %w", err)
		}
		c.pageSrc = src
	}

	doc, err := html.Parse(bytes.NewReader(c.pageSrc))
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	c.doc = doc

	handles := []struct {
		id  string
		dst **html.Node
	}{
		{elementIDActivitiesList, &c.list},
		{elementIDActivitySelect, &c.selectEl},
		{elementIDEmailInput, &c.emailEl},
		{elementIDSignupForm, &c.form},
		{elementIDMessage, &c.message},
	}
	for _, h := range handles {
		n := findByID(doc, h.id)
		if n == nil {
			return nil, fmt.Errorf("page has no #%s element", h.id)
		}
		*h.dst = n
	}

	return c, nil
}

// Close останавливает отложенное скрытие сообщения.
func (c *ActivityClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hideTimer != nil {
		c.hideTimer.Stop()
		c.hideTimer = nil
	}
	c.hideGen++
}

// LoadActivities перечитывает справочник и целиком перестраивает список карточек и
// выпадающий список. При ошибке список заменяется текстом о сбое, выпадающий список
// остаётся от прошлой загрузки.
func (c *ActivityClient) LoadActivities(ctx context.Context) error {
	dir, err := c.api.Activities(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err == nil {
		err = c.renderDirectory(dir)
	}
	if err != nil {
		c.log.Error("error fetching activities", slog.Any("err", err))
		c.showLoadFailure()
		return fmt.Errorf("load activities: %w", err)
	}
	return nil
}

// renderDirectory вызывается под c.mu. Карточки собираются заранее,
// чтобы ошибка шаблона не оставила список наполовину заполненным.
func (c *ActivityClient) renderDirectory(dir model.Directory) error {
	var cards [][]*html.Node
	for _, a := range dir.Activities() {
		nodes, err := renderCard(c.list, a)
		if err != nil {
			return fmt.Errorf("render %q: %w", a.Name, err)
		}
		cards = append(cards, nodes)
	}

	removeChildren(c.list)
	removeChildren(c.selectEl)
	c.selectEl.AppendChild(newOption("", placeholderOption))

	for i, a := range dir.Activities() {
		for _, n := range cards[i] {
			c.list.AppendChild(n)
		}
		c.selectEl.AppendChild(newOption(a.Name, a.Name))
	}
	return nil
}

func (c *ActivityClient) showLoadFailure() {
	removeChildren(c.list)
	nodes, err := parseInto(c.list, []byte(loadFailedHTML))
	if err != nil {
		setText(c.list, "Failed to load activities. Please try again later.")
		return
	}
	for _, n := range nodes {
		c.list.AppendChild(n)
	}
}

// FillSignupForm заполняет поля формы, как это сделал бы пользователь.
// Неизвестное имя кружка сбрасывает выбор на заглушку.
func (c *ActivityClient) FillSignupForm(email, activity string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	setAttr(c.emailEl, "value", email)
	for _, opt := range findAll(c.selectEl, isElement(atom.Option)) {
		v, _ := attr(opt, "value")
		if v == activity {
			setAttr(opt, "selected", "")
		} else {
			removeAttr(opt, "selected")
		}
	}
}

// FormValues возвращает текущие значения полей email и activity.
func (c *ActivityClient) FormValues() (email, activity string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formValues()
}

func (c *ActivityClient) formValues() (string, string) {
	email, _ := attr(c.emailEl, "value")

	options := findAll(c.selectEl, isElement(atom.Option))
	for _, opt := range options {
		if _, ok := attr(opt, "selected"); ok {
			v, _ := attr(opt, "value")
			return email, v
		}
	}
	if len(options) > 0 {
		v, _ := attr(options[0], "value")
		return email, v
	}
	return email, ""
}

// resetForm возвращает поля формы к значениям по умолчанию. Вызывается под c.mu.
func (c *ActivityClient) resetForm() {
	for _, input := range findAll(c.form, isElement(atom.Input)) {
		removeAttr(input, "value")
	}
	for _, opt := range findAll(c.form, isElement(atom.Option)) {
		removeAttr(opt, "selected")
	}
}

// SubmitSignup отправляет форму: значения полей берутся в момент вызова и уходят на
// сервер без проверки. После успешной записи форма очищается, а справочник перечитывается.
func (c *ActivityClient) SubmitSignup(ctx context.Context) error {
	c.mu.Lock()
	email, activity := c.formValues()
	c.mu.Unlock()

	msg, err := c.api.Signup(ctx, activity, email)

	c.mu.Lock()
	if err != nil {
		text := msgSignupFailed
		if detail, ok := detailOf(err); ok {
			text = detail
		} else if isAPIError(err) {
			text = msgSignupFallback
		}
		c.showMessage(classError, text)
		c.mu.Unlock()

		c.log.Error("error signing up",
			slog.String("activity", activity),
			slog.String("email", email),
			slog.Any("err", err),
		)
		return fmt.Errorf("signup: %w", err)
	}

	c.showMessage(classSuccess, msg)
	c.resetForm()
	c.mu.Unlock()

	c.refresh(ctx)
	return nil
}

// HandleClick — делегированный обработчик кликов по списку карточек. Клик принимается,
// только если target лежит внутри кнопки удаления, а та внутри записи списка участников
// с атрибутами data-activity и data-email. Возвращает true, если запрос на выписку ушёл.
func (c *ActivityClient) HandleClick(ctx context.Context, target *html.Node) (bool, error) {
	c.mu.Lock()
	activity, email, ok := c.removalTarget(target)
	c.mu.Unlock()

	if !ok {
		return false, nil
	}
	return true, c.UnregisterParticipant(ctx, activity, email)
}

// removalTarget вызывается под c.mu.
func (c *ActivityClient) removalTarget(target *html.Node) (string, string, bool) {
	if target == nil || !contains(c.list, target) {
		return "", "", false
	}

	button := closest(target, withClass(classRemovalControl))
	if button == nil {
		return "", "", false
	}

	entry := closest(button.Parent, isElement(atom.Li))
	if entry == nil || !contains(c.list, entry) {
		return "", "", false
	}

	activity, _ := attr(entry, attrActivity)
	email, _ := attr(entry, attrEmail)
	if activity == "" || email == "" {
		return "", "", false
	}
	return activity, email, true
}

// UnregisterParticipant выписывает участника и при успехе перечитывает справочник.
func (c *ActivityClient) UnregisterParticipant(ctx context.Context, activity, email string) error {
	msg, err := c.api.Unregister(ctx, activity, email)

	c.mu.Lock()
	if err != nil {
		text := msgUnregisterFailed
		if detail, ok := detailOf(err); ok {
			text = detail
		} else if isAPIError(err) {
			text = msgUnregisterFallback
		}
		c.showMessage(classError, text)
		c.mu.Unlock()

		c.log.Error("error unregistering participant",
			slog.String("activity", activity),
			slog.String("email", email),
			slog.Any("err", err),
		)
		return fmt.Errorf("unregister: %w", err)
	}

	c.showMessage(classSuccess, msg)
	c.mu.Unlock()

	c.refresh(ctx)
	return nil
}

// refresh перечитывает справочник после изменения. Ошибка уже показана в списке
// и записана в лог, исход самого изменения она не меняет.
func (c *ActivityClient) refresh(ctx context.Context) {
	if err := c.LoadActivities(ctx); err != nil && !errors.Is(err, context.Canceled) {
		c.log.Debug("refresh after mutation failed", slog.Any("err", err))
	}
}

// showMessage показывает сообщение и перезапускает таймер скрытия: предыдущий таймер
// отменяется, поэтому старое действие не может скрыть более новое сообщение.
// Вызывается под c.mu.
func (c *ActivityClient) showMessage(kind, text string) {
	setText(c.message, text)
	setAttr(c.message, "class", kind)

	if c.hideTimer != nil {
		c.hideTimer.Stop()
	}
	c.hideGen++
	gen := c.hideGen

	c.hideTimer = time.AfterFunc(c.hideAfter, func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		// таймер мог сработать между Stop и перезапуском
		if c.hideGen != gen {
			return
		}
		addClass(c.message, classHidden)
		c.hideTimer = nil
	})
}
