package services

import (
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"Stowed/internal/config"
	"Stowed/internal/repository"
)

// Janitor runs the scheduled clean cycle: expired share grants and
// download tickets are purged, soft-deleted records are hard-deleted,
// and blobs nothing references anymore are removed from disk.
type Janitor struct {
	fileRepo      repository.FileRepository
	folderRepo    repository.FolderRepository
	shareRepo     repository.ShareRepository
	blobs         BlobService
	configuration *config.Configuration
	logService    LogService
	cleaning      bool
	mutex         sync.Mutex
	cron          *cron.Cron
}

func NewJanitorService(
	fileRepo repository.FileRepository,
	folderRepo repository.FolderRepository,
	shareRepo repository.ShareRepository,
	blobs BlobService,
	logService LogService,
	configuration *config.Configuration,
) *Janitor {
	return &Janitor{
		fileRepo:      fileRepo,
		folderRepo:    folderRepo,
		shareRepo:     shareRepo,
		blobs:         blobs,
		logService:    logService,
		configuration: configuration,
		cron:          cron.New(),
	}
}

func (j *Janitor) StartCleanCycle() {
	j.logService.Log.Debug("starting clean job")
	schedule := j.configuration.Server.CleanConfig.Schedule
	_, err := j.cron.AddFunc(schedule, func() {
		j.mutex.Lock()
		if j.cleaning {
			j.mutex.Unlock()
			return
		}
		j.cleaning = true
		j.mutex.Unlock()

		defer func() {
			j.mutex.Lock()
			j.cleaning = false
			j.mutex.Unlock()
		}()
		j.clean()
	})
	if err != nil {
		j.logService.Log.WithFields(logrus.Fields{
			"job":   "clean",
			"error": err.Error(),
		}).Error("Failed to start clean job")
		return
	}
	j.cron.Start()
}

func (j *Janitor) ForceClean() error {
	j.mutex.Lock()
	if j.cleaning {
		j.mutex.Unlock()
		return errors.New("cleaning is in progress")
	}
	j.cleaning = true
	j.mutex.Unlock()

	defer func() {
		j.mutex.Lock()
		j.cleaning = false
		j.mutex.Unlock()
	}()
	j.clean()
	return nil
}

func (j *Janitor) Stop() {
	j.cron.Stop()
}

func (j *Janitor) IsCleaning() bool {
	j.mutex.Lock()
	defer j.mutex.Unlock()
	return j.cleaning
}

func (j *Janitor) clean() {
	now := time.Now()
	log := j.logService.Log.WithFields(logrus.Fields{"job": "clean"})

	if n, err := j.shareRepo.DeleteExpired(now); err != nil {
		log.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to purge expired shares")
	} else if n > 0 {
		log.WithFields(logrus.Fields{"count": n}).Info("purged expired share grants")
	}

	if n, err := j.shareRepo.DeleteExpiredTickets(now); err != nil {
		log.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to purge expired tickets")
	} else if n > 0 {
		log.WithFields(logrus.Fields{"count": n}).Info("purged expired download tickets")
	}

	files, err := j.fileRepo.FindDeleted()
	if err != nil {
		log.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to find deleted files")
		return
	}
	var removed int
	for i := range files {
		if err := j.fileRepo.HardDelete(&files[i]); err != nil {
			log.WithFields(logrus.Fields{"error": err.Error(), "file": files[i].Name}).Error("Failed to delete file record")
			continue
		}
		refs, err := j.fileRepo.CountBySHA256(files[i].SHA256)
		if err == nil && refs == 0 {
			if err := j.blobs.Delete(files[i].SHA256); err != nil {
				log.WithFields(logrus.Fields{"error": err.Error(), "sha256": files[i].SHA256}).Error("Failed to delete blob")
			}
		}
		removed++
	}

	folders, err := j.folderRepo.FindDeleted()
	if err != nil {
		log.WithFields(logrus.Fields{"error": err.Error()}).Error("Failed to find deleted folders")
		return
	}
	for i := range folders {
		if err := j.folderRepo.HardDelete(&folders[i]); err != nil {
			log.WithFields(logrus.Fields{"error": err.Error(), "folder": folders[i].Name}).Error("Failed to delete folder record")
			continue
		}
		removed++
	}

	if removed > 0 {
		log.WithFields(logrus.Fields{"count": removed, "status": "success"}).Info("clean job finished")
	}
}
