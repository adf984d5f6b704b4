package interchange

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gymly/backend/pkg"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const rootBackupsFolderName = "gymly-backup"

// GoogleDriveBackupService bundles the exported .gymlysplit files
// into one archive and uploads it into a dedicated google drive folder.
type GoogleDriveBackupService struct {
	exporter        *Service
	service         *drive.Service
	backupsFolderId string
}

func NewGoogleDriveBackupService(ctx context.Context, credentialsJson []byte, exporter *Service) (*GoogleDriveBackupService, error) {
	driveService, err := drive.NewService(ctx, option.WithCredentialsJSON(credentialsJson))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}

	rootFolderQuery := fmt.Sprintf(
		"mimeType = 'application/vnd.google-apps.folder' and trashed = false and name = '%s'",
		rootBackupsFolderName,
	)
	backupFolders, err := driveService.
		Files.List().
		Q(rootFolderQuery).
		Fields("files(id, name)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve files: %w", err)
	}

	backupsFolderId := ""
	if len(backupFolders.Files) > 0 {
		rbf := backupFolders.Files[0]
		log.Debugf("root backups folder found, %s: %s", rbf.Name, rbf.Id)
		backupsFolderId = rbf.Id
	}

	s := &GoogleDriveBackupService{
		exporter: exporter,
		service:  driveService,
	}

	if backupsFolderId == "" {
		log.Debugf("root backups folder not found, recreating ...")
		backupsFolderId, err = s.createRootBackupsFolder()
		if err != nil {
			return nil, fmt.Errorf("failed to create root backups folder: %w", err)
		}
		log.Debugf("new root backups folder created: %s", backupsFolderId)
	}

	s.backupsFolderId = backupsFolderId

	return s, nil
}

// DoBackup exports every split into the exports directory, bundles
// the directory into one tar.gz archive and uploads that, stamped
// with the backup time.
func (s *GoogleDriveBackupService) DoBackup(ctx context.Context, baseTime time.Time) error {
	paths, err := s.exporter.ExportAll(ctx)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		log.Debugf("no splits to backup, done")
		return nil
	}

	var archive bytes.Buffer
	if err := pkg.Compress(s.exporter.exportsRootPath, &archive); err != nil {
		return fmt.Errorf("compress exports dir: %w", err)
	}

	stamp := fmt.Sprintf("%d-%d-%d", baseTime.Day(), baseTime.Month(), baseTime.Year())
	fileName := fmt.Sprintf("%s_splits.tar.gz", stamp)
	if err := s.uploadArchive(&archive, fileName); err != nil {
		return fmt.Errorf("failed to upload backup archive: %w", err)
	}

	log.Debugf("%d splits backed up as %s", len(paths), fileName)

	return nil
}

func (s *GoogleDriveBackupService) uploadArchive(archive io.Reader, fileName string) error {
	fileMeta := &drive.File{
		Name: fileName,
		// https://developers.google.com/drive/api/v3/mime-types
		MimeType: "application/gzip",
		Parents:  []string{s.backupsFolderId},
	}

	backupFile, err := s.service.
		Files.Create(fileMeta).
		Fields("id, parents").
		Media(archive).
		Do()
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}

	log.Tracef("backup file [%s] saved: %s", fileName, backupFile.Id)

	return nil
}

func (s *GoogleDriveBackupService) createRootBackupsFolder() (string, error) {
	backupsFolderMeta := &drive.File{
		Name:     rootBackupsFolderName,
		MimeType: "application/vnd.google-apps.folder",
	}

	bfRes, err := s.service.
		Files.Create(backupsFolderMeta).
		Fields("id").
		Do()
	if err != nil {
		return "", err
	}

	return bfRes.Id, nil
}

// ListBackupFiles returns the current backup files, newest data is
// whatever was uploaded last.
func (s *GoogleDriveBackupService) ListBackupFiles() ([]*drive.File, error) {
	query := fmt.Sprintf(
		"'%s' in parents and mimeType != 'application/vnd.google-apps.folder' and trashed = false",
		s.backupsFolderId,
	)
	backups, err := s.service.
		Files.List().
		Q(query).
		Fields("files(id, name, createdTime)").
		Do()
	if err != nil {
		return nil, err
	}

	return backups.Files, nil
}
