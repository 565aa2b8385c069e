package services

import (
	"context"
	"fmt"
	"os"

	"dietapp-backend/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awssns "github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sirupsen/logrus"
)

// SmsService delivers OTP codes over SNS. When SMS_ENABLED is not
// "true" it runs in dev mode: nothing is sent and callers may echo the
// code back in the response instead.
type SmsService struct {
	sns     *awssns.Client
	enabled bool
}

func NewSmsService() (*SmsService, error) {
	if os.Getenv("SMS_ENABLED") != "true" {
		return &SmsService{enabled: false}, nil
	}

	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "ap-south-1"
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SmsService{sns: awssns.NewFromConfig(cfg), enabled: true}, nil
}

// DevMode reports whether codes are delivered at all.
func (s *SmsService) DevMode() bool {
	return !s.enabled
}

func (s *SmsService) SendOTP(mobile, code string) error {
	if !s.enabled {
		logger.Info("dev mode OTP", logrus.Fields{"mobile": mobile, "code": code})
		return nil
	}

	msg := fmt.Sprintf("Your diet app login code is %s. It is valid for one login only.", code)
	_, err := s.sns.Publish(context.TODO(), &awssns.PublishInput{
		PhoneNumber: aws.String(mobile),
		Message:     aws.String(msg),
	})
	if err != nil {
		return fmt.Errorf("failed to send OTP SMS: %w", err)
	}
	return nil
}
