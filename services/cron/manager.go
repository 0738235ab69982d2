package cron

import (
	"log"

	"github.com/robfig/cron/v3"

	"github.com/CHYou2Sef/BridgeEd/services"
)

// CronManager schedules the background maintenance jobs
type CronManager struct {
	cron    *cron.Cron
	gateway *services.GatewayService
}

// NewCronManager creates a cron manager over the gateway
func NewCronManager(gateway *services.GatewayService) *CronManager {
	return &CronManager{
		cron:    cron.New(),
		gateway: gateway,
	}
}

// Start registers and starts all scheduled jobs
func (m *CronManager) Start() error {
	// Refresh the simulated service health latencies every 30 seconds
	if _, err := m.cron.AddFunc("@every 30s", m.RefreshGatewayHealth); err != nil {
		return err
	}

	m.cron.Start()
	log.Println("Cron manager started")
	return nil
}

// Stop halts all scheduled jobs
func (m *CronManager) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron manager stopped")
}

// RefreshGatewayHealth jitters the gateway health records
func (m *CronManager) RefreshGatewayHealth() {
	m.gateway.RefreshHealth()
	log.Println("[CRON] refreshed gateway health records")
}
