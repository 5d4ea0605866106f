package notifier

import (
	"sync"

	"alerthub_backend/internal/logger"
	"alerthub_backend/internal/models"
)

// Channel отправляет одно уведомление одному пользователю.
// Дедупликация - забота канала, engine лишь соблюдает частоту
// напоминаний.
type Channel interface {
	Name() models.DeliveryChannel
	Send(user *models.User, alert *models.Alert) error
}

// Registry хранит каналы доставки по имени. Новый канал
// подключается одним Register-вызовом.
type Registry struct {
	mu       sync.RWMutex
	channels map[models.DeliveryChannel]Channel
}

func NewRegistry(channels ...Channel) *Registry {
	r := &Registry{channels: make(map[models.DeliveryChannel]Channel)}
	for _, ch := range channels {
		r.Register(ch)
	}
	return r
}

func (r *Registry) Register(ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[ch.Name()] = ch
}

// Resolve возвращает канал по имени. Неизвестный канал
// деградирует до in-app, чтобы напоминания не терялись.
func (r *Registry) Resolve(name models.DeliveryChannel) Channel {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if ch, ok := r.channels[name]; ok {
		return ch
	}
	logger.Warn("unknown delivery channel, falling back to in_app", "channel", string(name))
	return r.channels[models.ChannelInApp]
}

// Recorder пишет отправки в память; используется в тестах
// для проверки reminder-прохода.
type Recorder struct {
	mu    sync.Mutex
	name  models.DeliveryChannel
	Sends []RecordedSend
}

type RecordedSend struct {
	UserID  string
	AlertID string
}

func NewRecorder(name models.DeliveryChannel) *Recorder {
	return &Recorder{name: name}
}

func (r *Recorder) Name() models.DeliveryChannel { return r.name }

func (r *Recorder) Send(user *models.User, alert *models.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sends = append(r.Sends, RecordedSend{UserID: user.ID, AlertID: alert.ID})
	return nil
}

func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Sends)
}
