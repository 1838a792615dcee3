package tdi

import (
	"testing"

	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/notify"
	"github.com/stretchr/testify/suite"
)

type SinksTestSuite struct {
	suite.Suite
}

func TestSinksSuite(t *testing.T) {
	suite.Run(t, new(SinksTestSuite))
}

func (suite *SinksTestSuite) TestNewNotifier() {
	log := logger.NewNopLogger()
	config := DefaultConfig().Notification

	notifier, err := NewNotifier(config, log)
	suite.Require().NoError(err)
	suite.Nil(notifier)

	config.Enabled = true
	notifier, err = NewNotifier(config, log)
	suite.Require().NoError(err)

	multi, ok := notifier.(*notify.MultiNotifier)
	suite.Require().True(ok)
	suite.Equal(1, multi.Len())

	config.SMTP.Host = "smtp.example.com"
	notifier, err = NewNotifier(config, log)
	suite.Require().NoError(err)
	suite.Equal(2, notifier.(*notify.MultiNotifier).Len())
}
