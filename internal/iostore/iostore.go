// Package iostore persists evaluation runs and per-day decisions.
package iostore

import (
	"sync"

	"github.com/redlinelab/redline/internal/contract"
)

// ResultStoreManager manages the configured ResultStore instance.
type ResultStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	results      contract.ResultStore
}

var _ contract.StoreManager = &ResultStoreManager{} // Compile-time check

// GetResultStore returns the result ResultStore.
func (mgr *ResultStoreManager) GetResultStore() contract.ResultStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.results
}
