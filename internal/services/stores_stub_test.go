package services

import (
	"errors"
	"sync"

	"github.com/terraincognita07/cyclecast/internal/models"
)

type stubEntryStore struct {
	mu         sync.Mutex
	entries    []models.CycleEntry
	listErr    error
	createErr  error
	replaceErr error
}

func (stub *stubEntryStore) ListEntries() ([]models.CycleEntry, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.CycleEntry, len(stub.entries))
	copy(result, stub.entries)
	return result, nil
}

func (stub *stubEntryStore) CreateEntry(entry *models.CycleEntry) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.createErr != nil {
		return stub.createErr
	}
	stub.entries = append(stub.entries, *entry)
	return nil
}

func (stub *stubEntryStore) DeleteEntry(id string) (bool, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	for index, entry := range stub.entries {
		if entry.ID == id {
			stub.entries = append(stub.entries[:index], stub.entries[index+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (stub *stubEntryStore) ReplaceAllEntries(entries []models.CycleEntry) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.replaceErr != nil {
		return stub.replaceErr
	}
	stub.entries = make([]models.CycleEntry, len(entries))
	copy(stub.entries, entries)
	return nil
}

type stubPreferencesStore struct {
	mu          sync.Mutex
	preferences models.Preferences
	loadErr     error
	saveErr     error
	saves       int
}

func newStubPreferencesStore() *stubPreferencesStore {
	return &stubPreferencesStore{preferences: models.DefaultPreferences()}
}

func (stub *stubPreferencesStore) LoadPreferences() (models.Preferences, error) {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.loadErr != nil {
		return models.Preferences{}, stub.loadErr
	}
	return stub.preferences, nil
}

func (stub *stubPreferencesStore) SavePreferences(preferences *models.Preferences) error {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	if stub.saveErr != nil {
		return stub.saveErr
	}
	stub.preferences = *preferences
	stub.saves++
	return nil
}

var errStubFailure = errors.New("stub failure")
