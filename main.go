package main

import "github.com/suiyuan1314/CommonEVMContractDashboard/cmd"

func main() {
	cmd.Execute()
}
