package storage

import (
	"context"
	"fmt"

	"github.com/bcnelson/netinventory/internal/domain"
)

func seedRow(name, typ, ip, mac, vlan, location string) *domain.EquipmentInput {
	return &domain.EquipmentInput{
		Name:     name,
		Type:     typ,
		IP:       ip,
		MAC:      &mac,
		VLAN:     &vlan,
		Location: &location,
	}
}

// SampleEquipment returns the demo rows inserted into an empty store.
func SampleEquipment() []*domain.EquipmentInput {
	return []*domain.EquipmentInput{
		seedRow("Switch A", "Switch", "192.168.1.1", "AA:BB:CC:DD:EE:01", "10", "Salle 1"),
		seedRow("Routeur B", "Routeur", "192.168.1.254", "AA:BB:CC:DD:EE:02", "20", "Salle 2"),
		seedRow("AP Wifi C", "Point d'accès", "192.168.2.1", "AA:BB:CC:DD:EE:03", "30", "Hall"),
		seedRow("Switch D", "Switch", "192.168.3.1", "AA:BB:CC:DD:EE:04", "40", "Salle Serveurs"),
		seedRow("Routeur E", "Routeur", "10.0.0.1", "AA:BB:CC:DD:EE:05", "50", "Bureau Réseau"),
		seedRow("Firewall F", "Pare-feu", "10.0.0.254", "AA:BB:CC:DD:EE:06", "60", "Datacenter"),
		seedRow("Switch G", "Switch", "172.16.0.1", "AA:BB:CC:DD:EE:07", "70", "RDC"),
		seedRow("AP Wifi H", "Point d'accès", "172.16.0.10", "AA:BB:CC:DD:EE:08", "80", "Etage 1"),
		seedRow("Modem I", "Modem", "192.0.2.1", "AA:BB:CC:DD:EE:09", "90", "Local Technique"),
		seedRow("Bridge J", "Bridge", "198.51.100.1", "AA:BB:CC:DD:EE:10", "100", "Toit"),
	}
}

// SeedIfEmpty inserts rows in a single transaction when the store holds no
// equipment. It returns the number of rows inserted.
func SeedIfEmpty(ctx context.Context, store Storage, rows []*domain.EquipmentInput) (int, error) {
	count, err := store.CountEquipment(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting equipment: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := store.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, row := range rows {
		if _, err := tx.CreateEquipment(ctx, row); err != nil {
			return 0, fmt.Errorf("seeding %q: %w", row.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing seed transaction: %w", err)
	}
	return len(rows), nil
}
