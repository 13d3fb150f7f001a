// Package mocks holds gomock doubles for the service layer's outbound ports.
package mocks

//go:generate mockgen -destination=mock_ports.go -package=mocks github.com/Skotchmaster/storefront/internal/service EventPublisher,OTPSender,ResendLimiter,ProductIndex
