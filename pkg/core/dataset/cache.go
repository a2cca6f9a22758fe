package dataset

import "sync"

var (
	cacheMu sync.Mutex
	cached  = make(map[string]*Store)
)

// LoadCached returns the process-wide Store for the given source path,
// loading it on first use. The cache is load-once, invalidate-never:
// refreshing the dataset means restarting the process.
func LoadCached(path string) (*Store, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if store, ok := cached[path]; ok {
		return store, nil
	}
	store, err := Load(path)
	if err != nil {
		return nil, err
	}
	cached[path] = store
	return store, nil
}
