// file: internals/features/auth/service/identity_service.go
package service

import (
	"context"
	"errors"
	"strings"

	workerModel "worknest_backend/internals/features/workers/model"
	workerRepo "worknest_backend/internals/features/workers/repository"
	"worknest_backend/internals/store"
)

const (
	AuthTypeRFID        = "rfid"
	AuthTypeFingerprint = "fingerprint"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// CredentialIndex finds identities by credential. ScanIndex walks the tree;
// a reverse index keyed by credential value can replace it without touching callers.
type CredentialIndex interface {
	FindAdmin(ctx context.Context, username, password string) (*workerModel.AdminModel, error)
	FindWorker(ctx context.Context, authType, value string) (string, *workerModel.WorkerModel, error)
}

type ScanIndex struct {
	Store store.Store
}

func NewScanIndex(st store.Store) *ScanIndex { return &ScanIndex{Store: st} }

// FindAdmin returns the first admin, in key order, whose name and password match.
func (i *ScanIndex) FindAdmin(ctx context.Context, username, password string) (*workerModel.AdminModel, error) {
	admins, err := workerRepo.ListAdmins(ctx, i.Store)
	if err != nil {
		return nil, err
	}
	for _, id := range workerModel.SortedAdminIDs(admins) {
		a := admins[id]
		if a.AdminName == username && CheckPassword(a.AdminPassword, password) {
			return a, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// FindWorker compares only the field selected by authType. Both sides are
// trimmed, readers often append a newline to the scanned value.
func (i *ScanIndex) FindWorker(ctx context.Context, authType, value string) (string, *workerModel.WorkerModel, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil, ErrInvalidCredentials
	}
	admins, err := workerRepo.ListAdmins(ctx, i.Store)
	if err != nil {
		return "", nil, err
	}
	for _, adminID := range workerModel.SortedAdminIDs(admins) {
		workers := admins[adminID].AdminWorkers
		for _, workerID := range workerModel.SortedWorkerIDs(workers) {
			w := workers[workerID]
			if cred := credentialOf(w, authType); cred != nil && strings.TrimSpace(*cred) == value {
				return adminID, w, nil
			}
		}
	}
	return "", nil, ErrInvalidCredentials
}

func credentialOf(w *workerModel.WorkerModel, authType string) *string {
	switch authType {
	case AuthTypeRFID:
		return w.WorkerRFIDID
	case AuthTypeFingerprint:
		return w.WorkerFingerprintID
	}
	return nil
}

/* ========================== RESOLVER ========================== */

// Identity is what a successful login puts into the session.
type Identity struct {
	AdminID   string
	AdminName string
	// set when a non-admin worker authenticated
	WorkerID string
}

func (id Identity) IsAdmin() bool { return id.WorkerID == "" }

type IdentityService struct {
	Index CredentialIndex
}

func NewIdentityService(index CredentialIndex) *IdentityService {
	return &IdentityService{Index: index}
}

func (s *IdentityService) ResolveAdminCredential(ctx context.Context, username, password string) (Identity, error) {
	admin, err := s.Index.FindAdmin(ctx, username, password)
	if err != nil {
		return Identity{}, err
	}
	return Identity{AdminID: admin.AdminID, AdminName: admin.AdminName}, nil
}

// ResolveWorkerCredential treats a worker flagged is_admin as an admin login
// for the admin that owns it.
func (s *IdentityService) ResolveWorkerCredential(ctx context.Context, authType, value string) (Identity, error) {
	adminID, w, err := s.Index.FindWorker(ctx, authType, value)
	if err != nil {
		return Identity{}, err
	}
	name := w.WorkerName
	if w.WorkerIsAdmin {
		if name == "" {
			name = "Admin"
		}
		return Identity{AdminID: adminID, AdminName: name}, nil
	}
	return Identity{AdminID: adminID, AdminName: name, WorkerID: w.WorkerID}, nil
}
