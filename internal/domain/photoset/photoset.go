package photoset

import (
	"sort"

	"github.com/google/uuid"

	"photo_stories/internal/domain/models"
)

// Set владеет упорядоченным списком фотографий одной галереи.
// Инвариант после каждой операции: позиции фотографий совпадают с их
// индексами в списке (0..n-1), без дыр и дубликатов id. Порядок массива
// и поле position всегда согласованы: position - производный кэш индекса,
// а не отдельный источник истины.
//
// Операции по несуществующему id - no-op, а не ошибка: жест в UI может
// гоняться с параллельным удалением.
type Set struct {
	photos []models.Photo
	dirty  bool
}

func New() *Set {
	return &Set{}
}

// Load заменяет коллекцию целиком. Вход сортируется по серверному
// position (при равенстве сохраняется исходный порядок), после чего
// позиции перештамповываются в непрерывные с нуля. Идемпотентна.
func (s *Set) Load(photos []models.Photo) {
	s.photos = make([]models.Photo, len(photos))
	copy(s.photos, photos)

	sort.SliceStable(s.photos, func(i, j int) bool {
		return s.photos[i].Position < s.photos[j].Position
	})

	s.restamp()
	s.dirty = false
}

// Reorder переносит фотографию на toIndex (с усечением в границы списка).
// Жест drag-and-drop сообщает "элемент A встал на место элемента B" -
// это перенос по индексу, не обмен местами. No-op, если фотографии нет
// или toIndex совпадает с текущим индексом.
func (s *Set) Reorder(photoID uuid.UUID, toIndex int) {
	from := s.indexOf(photoID)
	if from < 0 {
		return
	}

	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(s.photos)-1 {
		toIndex = len(s.photos) - 1
	}
	if toIndex == from {
		return
	}

	moved := s.photos[from]
	s.photos = append(s.photos[:from], s.photos[from+1:]...)

	s.photos = append(s.photos, models.Photo{})
	copy(s.photos[toIndex+1:], s.photos[toIndex:])
	s.photos[toIndex] = moved

	s.restamp()
	s.dirty = true
}

// InsertBatch дописывает загруженные фотографии в конец коллекции,
// выдавая им следующие непрерывные позиции.
func (s *Set) InsertBatch(newPhotos []models.Photo) {
	if len(newPhotos) == 0 {
		return
	}

	s.photos = append(s.photos, newPhotos...)
	s.restamp()
	s.dirty = true
}

// Remove удаляет фотографию и закрывает дыру в позициях.
func (s *Set) Remove(photoID uuid.UUID) {
	idx := s.indexOf(photoID)
	if idx < 0 {
		return
	}

	s.photos = append(s.photos[:idx], s.photos[idx+1:]...)
	s.restamp()
	s.dirty = true
}

// MoveOut изымает фотографию при переносе в другую галерею. Симметричный
// InsertBatch на коллекции назначения - забота вызывающего: у каждой
// галереи свой Set.
func (s *Set) MoveOut(photoID uuid.UUID) (models.Photo, bool) {
	idx := s.indexOf(photoID)
	if idx < 0 {
		return models.Photo{}, false
	}

	moved := s.photos[idx]
	s.photos = append(s.photos[:idx], s.photos[idx+1:]...)
	s.restamp()
	s.dirty = true

	return moved, true
}

// Photos возвращает копию коллекции в порядке отображения.
func (s *Set) Photos() []models.Photo {
	out := make([]models.Photo, len(s.photos))
	copy(out, s.photos)
	return out
}

func (s *Set) Len() int {
	return len(s.photos)
}

// PositionUpdates собирает батч {photoId, position} для сохранения
// порядка одним запросом на действие Save, а не на каждый жест.
func (s *Set) PositionUpdates() []models.PositionUpdate {
	updates := make([]models.PositionUpdate, len(s.photos))
	for i, p := range s.photos {
		updates[i] = models.PositionUpdate{PhotoID: p.ID, Position: p.Position}
	}
	return updates
}

// IsDirty сообщает, отличается ли порядок от последнего подтвержденного.
func (s *Set) IsDirty() bool {
	return s.dirty
}

// MarkSaved вызывается после успешного сохранения порядка на сервере.
func (s *Set) MarkSaved() {
	s.dirty = false
}

func (s *Set) indexOf(photoID uuid.UUID) int {
	for i, p := range s.photos {
		if p.ID == photoID {
			return i
		}
	}
	return -1
}

func (s *Set) restamp() {
	for i := range s.photos {
		s.photos[i].Position = i
	}
}
