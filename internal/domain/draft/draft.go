package draft

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"photo_stories/internal/domain/models"
	"photo_stories/internal/domain/photoset"
	"photo_stories/internal/lib/dateformat"
	"photo_stories/internal/lib/passgen"
)

// State состояние жизненного цикла сохранения черновика
type State int

const (
	StateClean State = iota
	StateDirty
	StateSaving
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateDirty:
		return "dirty"
	case StateSaving:
		return "saving"
	default:
		return "unknown"
	}
}

var (
	ErrNotDirty     = errors.New("draft has no unsaved changes")
	ErrSaveInFlight = errors.New("another save is already in flight")
)

// ValidationError локальная синхронная ошибка валидации. До сети не
// доходит, dirty-флаги черновика не трогает.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDate        = "date"
	FieldStatus      = "status"
	FieldPassphrase  = "passphrase"
)

// Options конфигурация черновика, передается явно при создании.
// Набор статусов, требующих парольную фразу, принадлежит серверу
// и прокидывается сюда из конфигурации, а не зашивается в код.
type Options struct {
	GatedStatuses     []string
	DefaultStatus     string
	SuggestPassphrase func() string // по умолчанию passgen.Suggest
}

// Draft редактируемая проекция одной галереи: скалярные поля, коллекция
// фотографий и dirty-флаг на каждое поле. Все правки локальны до commit,
// автосохранения нет.
type Draft struct {
	id uuid.UUID

	title       string
	description string
	date        *time.Time
	dateText    string // свободно введенная дата, проверяется при валидации
	status      string
	passphrase  string

	// парольная фраза уходит в патч только если ее явно редактировали
	// в этой сессии; подсказка генератора и маска с сервера - нет
	passphraseEdited bool

	dirty  map[string]bool
	photos *photoset.Set

	state      State
	generation uint64

	gated   map[string]bool
	suggest func() string
}

// New создает черновик новой галереи с значениями по умолчанию.
func New(opts Options) *Draft {
	d := newDraft(opts)
	d.id = uuid.New()
	d.title = models.DefaultTitle
	d.description = models.DefaultDescription
	d.status = opts.DefaultStatus

	return d
}

// FromGallery создает черновик из загруженной галереи. Черновик чистый:
// dirty-флаги пустые, фотографии нормализуются коллекцией.
func FromGallery(g models.Gallery, opts Options) *Draft {
	d := newDraft(opts)
	d.id = g.ID
	d.title = g.Title
	d.description = g.Description
	d.date = g.Date
	d.status = g.Status
	d.photos.Load(g.Photos)

	return d
}

func newDraft(opts Options) *Draft {
	gated := make(map[string]bool, len(opts.GatedStatuses))
	for _, s := range opts.GatedStatuses {
		gated[s] = true
	}

	suggest := opts.SuggestPassphrase
	if suggest == nil {
		suggest = passgen.Suggest
	}

	return &Draft{
		dirty:   make(map[string]bool),
		photos:  photoset.New(),
		gated:   gated,
		suggest: suggest,
	}
}

func (d *Draft) ID() uuid.UUID { return d.id }

func (d *Draft) Title() string { return d.title }

func (d *Draft) Description() string { return d.description }

func (d *Draft) Date() *time.Time { return d.date }

func (d *Draft) Status() string { return d.status }

func (d *Draft) Passphrase() string { return d.passphrase }

func (d *Draft) Photos() *photoset.Set { return d.photos }

func (d *Draft) Generation() uint64 { return d.generation }

func (d *Draft) SetTitle(v string) {
	d.title = v
	d.markDirty(FieldTitle)
}

func (d *Draft) SetDescription(v string) {
	d.description = v
	d.markDirty(FieldDescription)
}

// SetDate устанавливает дату из календарного пикера (канонический момент).
func (d *Draft) SetDate(v *time.Time) {
	d.date = v
	d.dateText = ""
	d.markDirty(FieldDate)
}

// SetDateText принимает свободно введенную строку даты. Хранится сырой
// текст; разбор откладывается до валидации, чтобы ошибка всплыла как
// ValidationError, а не как паника рендера.
func (d *Draft) SetDateText(raw string) {
	d.dateText = strings.TrimSpace(raw)

	if d.dateText == "" {
		d.date = nil
	} else if t, ok := dateformat.ParseInstant(d.dateText); ok {
		utc := t.UTC()
		d.date = &utc
	}

	d.markDirty(FieldDate)
}

// SetStatus меняет статус. Побочный эффект: вход в закрытый статус
// подставляет свежую подсказку парольной фразы, если пользователь еще
// не задал свою; выход из закрытого статуса чистит поле локально
// (на сервер очистка уйдет только если поле было dirty).
func (d *Draft) SetStatus(v string) {
	d.status = v
	d.markDirty(FieldStatus)

	if d.gated[v] {
		if !d.passphraseEdited && d.passphrase == "" {
			d.passphrase = d.suggest()
		}
	} else {
		// локальная очистка при выходе из закрытого статуса; на сервер
		// она уйдет только если поле было dirty
		d.passphrase = ""
	}
}

// SetPassphrase явная правка парольной фразы пользователем.
func (d *Draft) SetPassphrase(v string) {
	d.passphrase = v
	d.passphraseEdited = true
	d.markDirty(FieldPassphrase)
}

// Validate возвращает первую нарушенную проверку в фиксированном
// порядке: заголовок, затем свободно введенная дата, затем длина
// парольной фразы. nil, когда все проверки прошли.
func (d *Draft) Validate() *ValidationError {
	if strings.TrimSpace(d.title) == "" {
		return &ValidationError{Field: FieldTitle, Message: "title must not be empty"}
	}

	if d.dateText != "" {
		if _, ok := dateformat.ParseInstant(d.dateText); !ok {
			return &ValidationError{Field: FieldDate, Message: "date is not a valid calendar date"}
		}
	}

	if d.passphrase != "" && len(d.passphrase) < 4 {
		return &ValidationError{Field: FieldPassphrase, Message: "passphrase must be at least 4 characters"}
	}

	return nil
}

// BuildPatch собирает минимальный патч: только dirty-поля. Дата уходит
// каноническим моментом, не строкой отображения. Парольная фраза
// включается только после явной правки в этой сессии.
func (d *Draft) BuildPatch() models.GalleryPatch {
	patch := make(models.GalleryPatch)

	if d.dirty[FieldTitle] {
		patch[FieldTitle] = strings.TrimSpace(d.title)
	}
	if d.dirty[FieldDescription] {
		patch[FieldDescription] = d.description
	}
	if d.dirty[FieldDate] {
		patch[FieldDate] = d.date
	}
	if d.dirty[FieldStatus] {
		patch[FieldStatus] = d.status
	}
	if d.dirty[FieldPassphrase] && d.passphraseEdited {
		patch[FieldPassphrase] = d.passphrase
	}

	return patch
}

// BeginSave переводит черновик в Saving. Достижимо только из Dirty и
// только после успешной валидации; второй Save при незавершенном первом
// отклоняется, чтобы два расходящихся патча не ушли не по порядку.
// Возвращает номер поколения для отбрасывания устаревших ответов.
func (d *Draft) BeginSave() (uint64, error) {
	if d.state == StateSaving {
		return 0, ErrSaveInFlight
	}
	if d.State() != StateDirty {
		return 0, ErrNotDirty
	}
	if verr := d.Validate(); verr != nil {
		return 0, verr
	}

	d.generation++
	d.state = StateSaving

	return d.generation, nil
}

// Commit вызывается после успешного удаленного сохранения: снимает
// dirty с каждого поля, вошедшего в отправленный патч. Ответ для
// чужого поколения игнорируется (черновик уже переоткрыт или правился
// заново).
func (d *Draft) Commit(gen uint64, sent models.GalleryPatch) bool {
	if gen != d.generation {
		return false
	}

	for field := range sent {
		delete(d.dirty, field)
	}
	d.state = StateClean

	return true
}

// FailSave возвращает черновик в Dirty после неудачного сохранения.
// Локальные правки сохраняются, пользователь может повторить Save.
func (d *Draft) FailSave(gen uint64) {
	if gen != d.generation {
		return
	}
	d.state = StateDirty
}

// State вычисляет текущее состояние: Saving пока идет сохранение,
// иначе Dirty при любом несохраненном поле или измененном порядке
// фотографий, иначе Clean.
func (d *Draft) State() State {
	if d.state == StateSaving {
		return StateSaving
	}
	if len(d.dirty) > 0 || d.photos.IsDirty() {
		return StateDirty
	}
	return StateClean
}

// IsDirty сообщает, есть ли несохраненные правки поля.
func (d *Draft) IsDirty(field string) bool {
	return d.dirty[field]
}

func (d *Draft) markDirty(field string) {
	d.dirty[field] = true
	if d.state != StateSaving {
		d.state = StateDirty
	}
}
