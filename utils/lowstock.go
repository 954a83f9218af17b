package utils

import (
	"context"
	"fmt"
	"log"
	"strings"

	"backend/models"
	"backend/store"
)

// LowStockSweep returns the nightly job: recompute the lowStock flag across
// the inventory collection and, when an alert address is configured, mail a
// summary of everything at or under its threshold.
func LowStockSweep(s store.Store, from, alertEmail string) func() {
	return func() {
		log.Println("Starting low-stock sweep")
		ctx := context.Background()

		var items []models.Inventory
		if err := s.Find(ctx, store.Inventory, store.Query{}, &items); err != nil {
			log.Printf("low-stock sweep: failed to list inventory: %v", err)
			return
		}

		var low []models.Inventory
		for _, item := range items {
			flag := item.Stock <= item.MinThreshold
			err := s.UpdateOne(ctx, store.Inventory, store.Filter{"_id": item.ID}, map[string]interface{}{
				"lowStock": flag,
			})
			if err != nil {
				log.Printf("low-stock sweep: failed to update %s: %v", item.Name, err)
				continue
			}
			if flag {
				low = append(low, item)
			}
		}
		log.Printf("Low-stock sweep finished: %d of %d items low", len(low), len(items))

		if alertEmail == "" || len(low) == 0 {
			return
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%d inventory items are at or below their minimum threshold:\n\n", len(low))
		for _, item := range low {
			fmt.Fprintf(&b, "- %s: %.2f %s (threshold %.2f)\n", item.Name, item.Stock, item.Unit, item.MinThreshold)
		}
		if err := SendEmail(from, alertEmail, "Low stock alert", b.String()); err != nil {
			log.Printf("low-stock sweep: failed to send alert email: %v", err)
		}
	}
}
