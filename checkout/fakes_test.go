package checkout

import (
	"context"
	"sync"

	"github.com/MosheOgalbo/boa-home-assignment/savedcart"
)

type fakeBackend struct {
	mu            sync.Mutex
	saves         []SaveRequest
	creds         []Credential
	saveErr       error
	items         []savedcart.SavedItem
	retrieveErr   error
	retrieveCalls int

	// when set, SaveCart signals entered and waits for release
	entered chan struct{}
	release chan struct{}
}

func (f *fakeBackend) SaveCart(_ context.Context, cred Credential, req SaveRequest) error {
	if f.entered != nil {
		f.entered <- struct{}{}
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creds = append(f.creds, cred)
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, req)
	return nil
}

func (f *fakeBackend) RetrieveCart(_ context.Context, _ Credential) ([]savedcart.SavedItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retrieveCalls++
	if f.retrieveErr != nil {
		return nil, f.retrieveErr
	}
	out := make([]savedcart.SavedItem, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeBackend) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeBackend) attempts() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.creds)
}

func (f *fakeBackend) lastSave() SaveRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saves[len(f.saves)-1]
}
