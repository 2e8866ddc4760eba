package execution

import (
	"github.com/yanun0323/logs"

	"tradedesk/internal/service"
)

// Service records executed orders and fans them out to trade booking
// and history.
type Service struct {
	*service.Service[Order]
}

// NewService creates an empty execution service.
func NewService() *Service {
	return &Service{Service: service.New[Order]("execution")}
}

// ExecuteOrder places an order on a venue and publishes it.
func (s *Service) ExecuteOrder(ord Order, venue Venue) {
	logs.Infof("executing order %s on %s: %s %s", ord.OrderID, venue, ord.Side, ord.ProductID)
	s.Update(ord)
}

// AlgoListener executes every order the algo engine decides. Algo
// orders always go to BrokerTec.
func (s *Service) AlgoListener() service.Listener[AlgoExecution] {
	return service.Func[AlgoExecution](func(ae AlgoExecution) {
		s.ExecuteOrder(ae.Order, BrokerTec)
	})
}
