package address

var ParseLenient = parseLenient
