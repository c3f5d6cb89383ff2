// Package persistence сохраняет значения полей формы между запусками.
// Сохранение работает по принципу "best effort": ошибки хранилища не всплывают наружу.
package persistence

import (
	"encoding/json"
	"errors"

	"vehicletax/internal/domain/models"
	"vehicletax/internal/domain/ports"
)

// DefaultFormID ключ снимка формы расчёта налога.
const DefaultFormID = "vehicle_tax_form"

// Cache снимок значений формы в хранилище, привязанный к идентификатору формы.
type Cache struct {
	store  ports.SnapshotStore
	formID string
	log    ports.Logger
}

// NewCache создает кэш формы formID поверх store.
func NewCache(store ports.SnapshotStore, formID string, log ports.Logger) *Cache {
	if formID == "" {
		formID = DefaultFormID
	}
	return &Cache{store: store, formID: formID, log: log}
}

// FormID возвращает ключ снимка.
func (c *Cache) FormID() string {
	return c.formID
}

// Save перезаписывает снимок текущими значениями полей. Пустые значения не сохраняются.
// Любая ошибка (сериализация, квота, запись) подавляется.
func (c *Cache) Save(state models.FormState) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Debug("[PERSIST] сохранение прервано: %v", r)
		}
	}()

	snapshot := make(models.Snapshot, len(state.Values))
	for name, value := range state.Values {
		if value != "" {
			snapshot[name] = value
		}
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		c.log.Debug("[PERSIST] ошибка сериализации снимка: %v", err)
		return
	}
	if err := c.store.Put(c.formID, data); err != nil {
		c.log.Debug("[PERSIST] ошибка записи снимка %s: %v", c.formID, err)
	}
}

// Load читает снимок. Возвращает false, если снимка нет или его не удалось разобрать;
// частично заполненное состояние не возвращается никогда.
func (c *Cache) Load() (models.FormState, bool) {
	data, err := c.store.Get(c.formID)
	if err != nil {
		if !errors.Is(err, ports.ErrSnapshotNotFound) {
			c.log.Debug("[PERSIST] ошибка чтения снимка %s: %v", c.formID, err)
		}
		return models.FormState{}, false
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil || snapshot == nil {
		c.log.Debug("[PERSIST] снимок %s повреждён: %v", c.formID, err)
		return models.FormState{}, false
	}

	state := models.NewFormState()
	for name, value := range snapshot {
		state.Values[name] = value
	}
	return state, true
}

// Clear удаляет снимок формы.
func (c *Cache) Clear() {
	if err := c.store.Delete(c.formID); err != nil {
		c.log.Debug("[PERSIST] ошибка удаления снимка %s: %v", c.formID, err)
	}
}
