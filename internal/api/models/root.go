package models

// SubnodeRequest delegates a child of the root node without evidence.
type SubnodeRequest struct {
	Label string `json:"label" binding:"required" example:"test"`
	Owner string `json:"owner" binding:"required" example:"0x00000000000000000000000000000000000000a1"`
}

// SubnodeResponse reports the delegated node.
type SubnodeResponse struct {
	Label string `json:"label"`
	Node  string `json:"node"`
	Owner string `json:"owner"`
}

// ControllerRequest names a controller to add.
type ControllerRequest struct {
	Address string `json:"address" binding:"required"`
}

// ControllersResponse lists the controller set in address order.
type ControllersResponse struct {
	Controllers []string `json:"controllers"`
	Count       int      `json:"count"`
}

// TransferRequest hands the root node to a new owner.
type TransferRequest struct {
	NewOwner string `json:"new_owner" binding:"required"`
}
