package syncing

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/contre95/soulsync/src/features/config"
	"github.com/contre95/soulsync/src/features/jobs"
	"github.com/contre95/soulsync/src/features/metrics"
	"github.com/contre95/soulsync/src/features/packing"
	"github.com/contre95/soulsync/src/features/planning"
	"github.com/contre95/soulsync/src/infra/destination"
	"github.com/contre95/soulsync/src/music"
	"github.com/fsnotify/fsnotify"
)

// byUUIDPath is where the kernel exposes volumes by filesystem UUID.
const byUUIDPath = "/dev/disk/by-uuid"

// defaultManagedRoot is the managed subtree on a volume when the device
// config does not name one.
const defaultManagedRoot = "Music"

// StateReader enumerates the current state of a managed root. It is read
// fresh at the start of every planning pass, never cached across runs.
type StateReader interface {
	Read(mountPath, managedRoot string) (planning.DestinationState, error)
}

// PlanExecutor applies an operation plan to a mounted volume.
type PlanExecutor interface {
	Apply(ctx context.Context, mountPath, managedRoot string, plan *planning.Plan, progress func(done, total int, msg string)) (destination.Stats, error)
}

// DeviceStatus represents the current status of a sync device
type DeviceStatus struct {
	UUID      string
	Name      string
	Mounted   bool
	MountPath string
	LastSeen  time.Time
	Error     string
}

// Service monitors destination volumes and runs planning passes against
// them.
type Service struct {
	configManager *config.Manager
	jobService    jobs.JobService
	catalog       *music.Catalog
	reader        StateReader
	executor      PlanExecutor
	shuffler      packing.Shuffler
	recorder      *metrics.Recorder

	statuses map[string]DeviceStatus
	mu       sync.RWMutex
	stopChan chan struct{}
}

// NewService creates a new sync service.
func NewService(cfgManager *config.Manager, jobService jobs.JobService, catalog *music.Catalog, reader StateReader, executor PlanExecutor, recorder *metrics.Recorder) *Service {
	return &Service{
		configManager: cfgManager,
		jobService:    jobService,
		catalog:       catalog,
		reader:        reader,
		executor:      executor,
		shuffler:      packing.NewShuffler(),
		recorder:      recorder,
		statuses:      make(map[string]DeviceStatus),
		stopChan:      make(chan struct{}),
	}
}

// Start begins monitoring sync devices
func (s *Service) Start() {
	go s.monitorDevices()
}

// Stop halts device monitoring
func (s *Service) Stop() {
	close(s.stopChan)
}

// monitorDevices checks device status periodically and whenever the
// kernel's by-uuid directory changes (a volume appearing or vanishing).
func (s *Service) monitorDevices() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	var events chan fsnotify.Event
	watcher, err := fsnotify.NewWatcher()
	if err == nil {
		if err := watcher.Add(byUUIDPath); err == nil {
			events = make(chan fsnotify.Event)
			go func() {
				for ev := range watcher.Events {
					events <- ev
				}
			}()
		} else {
			slog.Debug("Not watching for volume events", "path", byUUIDPath, "error", err)
		}
		defer watcher.Close()
	}

	s.checkDevices()
	for {
		select {
		case <-ticker.C:
			s.checkDevices()
		case ev := <-events:
			slog.Debug("Volume event", "op", ev.Op.String(), "name", ev.Name)
			s.checkDevices()
		case <-s.stopChan:
			return
		}
	}
}

// checkDevices checks the status of all configured devices
func (s *Service) checkDevices() {
	cfg := s.configManager.Get().Sync

	s.mu.Lock()
	defer s.mu.Unlock()

	newStatuses := make(map[string]DeviceStatus)

	for _, device := range cfg.Devices {
		var status DeviceStatus
		if existing, exists := s.statuses[device.UUID]; exists {
			status = existing
			status.LastSeen = time.Now()
		} else {
			status = DeviceStatus{
				UUID:     device.UUID,
				Name:     device.Name,
				LastSeen: time.Now(),
			}
		}

		mounted, mountPath, err := s.isDeviceMounted(device)
		if err != nil {
			slog.Error("Failed to check if device is mounted", "error", err)
			status.Error = err.Error()
		} else {
			status.Mounted = mounted
			status.MountPath = mountPath
			status.Error = ""
		}

		newStatuses[device.UUID] = status

		if status.Mounted {
			slog.Debug("Device mounted", "uuid", device.UUID, "name", device.Name, "path", status.MountPath)
		} else {
			slog.Debug("Device not mounted", "uuid", device.UUID, "name", device.Name)
		}
	}

	s.statuses = newStatuses
}

// isDeviceMounted checks if a device with the given UUID is mounted
func (s *Service) isDeviceMounted(device config.Device) (bool, string, error) {
	mounts, err := os.ReadFile("/proc/mounts")
	if err != nil {
		return false, "", err
	}

	// Resolve the UUID symlink to the actual device path, if present.
	uuidPath := filepath.Join(byUUIDPath, device.UUID)
	devicePath := ""
	if _, err := os.Lstat(uuidPath); err == nil {
		resolvedPath, err := os.Readlink(uuidPath)
		if err == nil {
			if !filepath.IsAbs(resolvedPath) {
				resolvedPath = filepath.Join(byUUIDPath, resolvedPath)
			}
			devicePath, err = filepath.EvalSymlinks(resolvedPath)
			if err != nil {
				slog.Warn("Failed to resolve device symlink", "uuid", device.UUID, "error", err)
			}
		}
	}

	for line := range strings.SplitSeq(string(mounts), "\n") {
		if strings.Contains(line, device.UUID) || (devicePath != "" && strings.Contains(line, devicePath)) {
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				return true, fields[1], nil
			}
		}
	}

	// Device exists but not mounted
	return false, "", nil
}

// GetStatus returns the current status of all devices
func (s *Service) GetStatus() map[string]DeviceStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]DeviceStatus)
	maps.Copy(result, s.statuses)
	return result
}

// GetDeviceStatus returns the status of a specific device
func (s *Service) GetDeviceStatus(uuid string) (DeviceStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status, exists := s.statuses[uuid]
	return status, exists
}

// mountedDevice returns the device config, its managed root and its mount
// path, or an error if the device is unknown or not mounted.
func (s *Service) mountedDevice(uuid string) (config.Device, string, string, error) {
	device, ok := s.configManager.Device(uuid)
	if !ok {
		return config.Device{}, "", "", fmt.Errorf("device not found")
	}

	status, exists := s.GetDeviceStatus(uuid)
	if !exists || !status.Mounted {
		return config.Device{}, "", "", fmt.Errorf("device not mounted")
	}

	managedRoot := device.SyncPath
	if managedRoot == "" {
		managedRoot = defaultManagedRoot
	}
	return device, managedRoot, status.MountPath, nil
}

// DeviceProfile returns the profile stored on the device's volume, or the
// device's configured defaults when the volume has none yet (first sync).
func (s *Service) DeviceProfile(uuid string) (Profile, error) {
	device, managedRoot, mountPath, err := s.mountedDevice(uuid)
	if err != nil {
		return Profile{}, err
	}

	profile, found, err := LoadProfile(mountPath, managedRoot)
	if err != nil {
		return Profile{}, err
	}
	if !found {
		slog.Info("No profile on volume, using device defaults", "uuid", uuid)
		return defaultProfile(device), nil
	}
	return profile, nil
}

// UpdateDeviceProfile stores a new profile on the device's volume.
func (s *Service) UpdateDeviceProfile(uuid string, profile Profile) error {
	_, managedRoot, mountPath, err := s.mountedDevice(uuid)
	if err != nil {
		return err
	}
	return SaveProfile(mountPath, managedRoot, profile)
}

// PlanDevice runs one planning pass for a mounted device and returns the
// plan without executing it. The destination state is read fresh; a
// failed read aborts the pass with no plan produced.
func (s *Service) PlanDevice(uuid string) (*planning.Plan, *PlanReport, error) {
	_, managedRoot, mountPath, err := s.mountedDevice(uuid)
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.DeviceProfile(uuid)
	if err != nil {
		return nil, nil, err
	}

	state, err := s.reader.Read(mountPath, managedRoot)
	if err != nil {
		return nil, nil, err
	}

	plan, report, err := BuildDevicePlan(s.catalog, profile, state, s.shuffler)
	if err != nil {
		return nil, nil, err
	}

	if report.CapacityExceeded {
		slog.Warn("Selection exceeds device capacity, truncated",
			"uuid", uuid, "selected", report.SelectedTracks, "final", report.FinalTracks)
	}
	if s.recorder != nil {
		s.recorder.ObservePlan(plan)
	}
	return plan, report, nil
}

// findRunningSyncJob finds the job ID of a running sync job for the given UUID
func (s *Service) findRunningSyncJob(uuid string) (string, bool) {
	for _, job := range s.jobService.GetJobs() {
		if job.Type == "volume_sync" && job.Status == jobs.JobStatusRunning {
			if job.Metadata != nil {
				if jobUUID, ok := job.Metadata["uuid"].(string); ok && jobUUID == uuid {
					return job.ID, true
				}
			}
		}
	}
	return "", false
}

// StartSync starts a sync operation for a device
func (s *Service) StartSync(uuid string) (string, error) {
	status, exists := s.GetDeviceStatus(uuid)
	if !exists {
		slog.Error("Device not found", "uuid", uuid)
		return "", fmt.Errorf("device not found")
	}

	if !status.Mounted {
		slog.Error("Device not mounted", "uuid", uuid)
		return "", fmt.Errorf("device not mounted")
	}

	if jobID, running := s.findRunningSyncJob(uuid); running {
		slog.Error("Sync already in progress", "uuid", uuid, "jobID", jobID)
		return "", fmt.Errorf("sync already in progress")
	}

	jobID, err := s.jobService.StartJob("volume_sync", "Sync "+status.Name, map[string]any{
		"uuid":      uuid,
		"mountPath": status.MountPath,
	})
	if err != nil {
		slog.Error("Failed to start sync job", "uuid", uuid, "error", err)
		return "", fmt.Errorf("failed to start sync job: %w", err)
	}

	return jobID, nil
}

// CancelSync cancels an ongoing sync operation
func (s *Service) CancelSync(uuid string) error {
	jobID, running := s.findRunningSyncJob(uuid)
	if !running {
		return fmt.Errorf("no sync in progress")
	}

	if err := s.jobService.CancelJob(jobID); err != nil {
		return fmt.Errorf("failed to cancel sync job: %w", err)
	}
	return nil
}
