package model

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"

	"github.com/bytedance/sonic"
)

// AdminModel is provisioned outside this service; only its workers change here.
type AdminModel struct {
	AdminID       string                  `json:"-"`
	AdminName     string                  `json:"name"`
	AdminPassword string                  `json:"password"`
	AdminWorkers  map[string]*WorkerModel `json:"workers,omitempty"`
}

// UnmarshalJSON decodes workers one by one and skips nodes that are not objects.
func (a *AdminModel) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("admin node: %w", err)
	}

	out := AdminModel{AdminID: a.AdminID}
	if name := looseString(raw["name"]); name != nil {
		out.AdminName = *name
	}
	if pw := looseString(raw["password"]); pw != nil {
		out.AdminPassword = *pw
	}
	if workers, ok := raw["workers"]; ok {
		out.AdminWorkers = DecodeWorkers(workers)
	}
	*a = out
	return nil
}

// DecodeWorkers reads a workers map, logging and dropping entries that fail to decode.
func DecodeWorkers(data []byte) map[string]*WorkerModel {
	var nodes map[string]json.RawMessage
	if err := sonic.Unmarshal(data, &nodes); err != nil {
		log.Printf("[WARN] workers node is not an object, ignored: %v", err)
		return map[string]*WorkerModel{}
	}
	workers := make(map[string]*WorkerModel, len(nodes))
	for id, node := range nodes {
		if string(node) == "null" {
			continue
		}
		var w WorkerModel
		if err := sonic.Unmarshal(node, &w); err != nil {
			log.Printf("[WARN] worker %s skipped: %v", id, err)
			continue
		}
		w.WorkerID = id
		workers[id] = &w
	}
	return workers
}

// FillIDs copies map keys into the records after decoding.
func (a *AdminModel) FillIDs(adminID string) {
	a.AdminID = adminID
	for id, w := range a.AdminWorkers {
		if w == nil {
			delete(a.AdminWorkers, id)
			continue
		}
		w.WorkerID = id
	}
}

func SortedAdminIDs(admins map[string]*AdminModel) []string {
	ids := make([]string, 0, len(admins))
	for id := range admins {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

type GPSDeviceModel struct {
	GPSDeviceActive bool `json:"active"`
}
